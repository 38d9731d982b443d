package enum

import "fmt"

// EmploymentStatus describes the contract type of a position.
type EmploymentStatus int

const (
	EmploymentStatusFullTime EmploymentStatus = iota
	EmploymentStatusPartTime
	EmploymentStatusContract
	EmploymentStatusSelfEmployed
	EmploymentStatusOther
)

var employmentStatusNames = []string{"full_time", "part_time", "contract", "self_employed", "other"}

func (s EmploymentStatus) String() string {
	if s < 0 || int(s) >= len(employmentStatusNames) {
		return fmt.Sprintf("EmploymentStatus(%d)", int(s))
	}
	return employmentStatusNames[s]
}

// IsValid reports whether s is one of the defined statuses.
func (s EmploymentStatus) IsValid() bool {
	return s >= EmploymentStatusFullTime && s <= EmploymentStatusOther
}
