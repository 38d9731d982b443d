package enum

import "fmt"

// EmploymentSize buckets a company by head count.
type EmploymentSize int

const (
	EmploymentSizeUnknown EmploymentSize = iota
	EmploymentSizeA                      // fewer than 100
	EmploymentSizeB                      // 101-500
	EmploymentSizeC                      // 501-1000
	EmploymentSizeD                      // 1001-5000
	EmploymentSizeE                      // 5001-10000
	EmploymentSizeF                      // more than 10000
)

var employmentSizeLabels = []string{"", "<100", "101-500", "501-1000", "1001-5000", "5001-10000", ">10000"}

func (e EmploymentSize) String() string {
	if e < 0 || int(e) >= len(employmentSizeLabels) {
		return fmt.Sprintf("EmploymentSize(%d)", int(e))
	}
	return employmentSizeLabels[e]
}

// IsValid reports whether e is a defined bucket.
func (e EmploymentSize) IsValid() bool {
	return e >= EmploymentSizeUnknown && e <= EmploymentSizeF
}

// Listing is the tri-state stock exchange listing of a company.
type Listing int

const (
	ListingUnknown Listing = iota
	ListingPublic
	ListingPrivate
)

var listingNames = []string{"unknown", "public", "private"}

func (l Listing) String() string {
	if l < 0 || int(l) >= len(listingNames) {
		return fmt.Sprintf("Listing(%d)", int(l))
	}
	return listingNames[l]
}

// IsValid reports whether l is a defined listing state.
func (l Listing) IsValid() bool {
	return l >= ListingUnknown && l <= ListingPrivate
}
