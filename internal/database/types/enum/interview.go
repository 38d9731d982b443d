package enum

import "fmt"

// HowObtained records how a candidate got the interview.
type HowObtained int

const (
	HowObtainedAdvert HowObtained = iota
	HowObtainedProfessionalContacts
	HowObtainedHeadHunter
	HowObtainedFriendsFamily
	HowObtainedJobFair
	HowObtainedOther
)

var howObtainedNames = []string{"advert", "professional_contacts", "head_hunter", "friends_family", "job_fair", "other"}

func (h HowObtained) String() string {
	if h < 0 || int(h) >= len(howObtainedNames) {
		return fmt.Sprintf("HowObtained(%d)", int(h))
	}
	return howObtainedNames[h]
}

// IsValid reports whether h is one of the defined channels.
func (h HowObtained) IsValid() bool {
	return h >= HowObtainedAdvert && h <= HowObtainedOther
}

// OfferOutcome is the tri-state result of an interview.
type OfferOutcome int

const (
	OfferOutcomeUnknown OfferOutcome = iota
	OfferOutcomeYes
	OfferOutcomeNo
)

func (o OfferOutcome) String() string {
	switch o {
	case OfferOutcomeUnknown:
		return "unknown"
	case OfferOutcomeYes:
		return "yes"
	case OfferOutcomeNo:
		return "no"
	default:
		return fmt.Sprintf("OfferOutcome(%d)", int(o))
	}
}

// IsValid reports whether o is one of the defined outcomes.
func (o OfferOutcome) IsValid() bool {
	return o >= OfferOutcomeUnknown && o <= OfferOutcomeNo
}
