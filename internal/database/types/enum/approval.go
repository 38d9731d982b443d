package enum

import "fmt"

// ApprovalStatus represents the moderation state of a submitted item.
type ApprovalStatus int

const (
	// ApprovalStatusPending indicates the item has not been reviewed by staff yet.
	ApprovalStatusPending ApprovalStatus = iota
	// ApprovalStatusApproved indicates the item was accepted by staff.
	ApprovalStatusApproved
	// ApprovalStatusRejected indicates the item was refused by staff.
	ApprovalStatusRejected
)

var approvalStatusNames = []string{"pending", "approved", "rejected"}

func (s ApprovalStatus) String() string {
	if s < 0 || int(s) >= len(approvalStatusNames) {
		return fmt.Sprintf("ApprovalStatus(%d)", int(s))
	}
	return approvalStatusNames[s]
}

// ApprovalStatusString parses the textual form of an ApprovalStatus.
func ApprovalStatusString(s string) (ApprovalStatus, error) {
	for i, name := range approvalStatusNames {
		if name == s {
			return ApprovalStatus(i), nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid ApprovalStatus", s)
}

// IsCounted reports whether a review in this state contributes to company scores.
func (s ApprovalStatus) IsCounted() bool {
	return s != ApprovalStatusRejected
}
