package enum

import "fmt"

// SalaryPeriod is the period a reported amount covers.
type SalaryPeriod int

const (
	SalaryPeriodMonthly SalaryPeriod = iota
	SalaryPeriodQuarterly
	SalaryPeriodAnnual
	SalaryPeriodHourly
)

// HoursPerYear is the full-time hour count used to annualize hourly pay.
const HoursPerYear = 2080

var salaryPeriodNames = []string{"monthly", "quarterly", "annual", "hourly"}

func (p SalaryPeriod) String() string {
	if p < 0 || int(p) >= len(salaryPeriodNames) {
		return fmt.Sprintf("SalaryPeriod(%d)", int(p))
	}
	return salaryPeriodNames[p]
}

// IsValid reports whether p is one of the defined periods.
func (p SalaryPeriod) IsValid() bool {
	return p >= SalaryPeriodMonthly && p <= SalaryPeriodHourly
}

// PerYear returns how many periods fit in a year.
func (p SalaryPeriod) PerYear() int64 {
	switch p {
	case SalaryPeriodMonthly:
		return 12
	case SalaryPeriodQuarterly:
		return 4
	case SalaryPeriodAnnual:
		return 1
	case SalaryPeriodHourly:
		return HoursPerYear
	default:
		return 0
	}
}

// GrossNet marks whether an amount is before or after tax.
type GrossNet int

const (
	GrossNetGross GrossNet = iota
	GrossNetNet
)

func (g GrossNet) String() string {
	switch g {
	case GrossNetGross:
		return "gross"
	case GrossNetNet:
		return "net"
	default:
		return fmt.Sprintf("GrossNet(%d)", int(g))
	}
}

// IsValid reports whether g is gross or net.
func (g GrossNet) IsValid() bool {
	return g == GrossNetGross || g == GrossNetNet
}
