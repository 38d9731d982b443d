package enum

import "fmt"

// ItemKind identifies the type of content a user can submit about a company.
type ItemKind int

const (
	ItemKindReview ItemKind = iota
	ItemKindSalary
	ItemKindInterview
)

var itemKindNames = []string{"review", "salary", "interview"}

// ItemKinds lists every kind in display order.
var ItemKinds = []ItemKind{ItemKindReview, ItemKindSalary, ItemKindInterview}

func (k ItemKind) String() string {
	if k < 0 || int(k) >= len(itemKindNames) {
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
	return itemKindNames[k]
}

// ItemKindString parses the textual form of an ItemKind.
func ItemKindString(s string) (ItemKind, error) {
	for i, name := range itemKindNames {
		if name == s {
			return ItemKind(i), nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid ItemKind", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ItemKind) UnmarshalText(text []byte) error {
	v, err := ItemKindString(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
