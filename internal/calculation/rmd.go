package calculation

import (
	"github.com/conversn-io/seniorsimple-sub003/pkg/dateutil"
	money "github.com/conversn-io/seniorsimple-sub003/pkg/decimal"
	"github.com/shopspring/decimal"
)

// DefaultRMDStartAge applies when neither the rules nor a birth year pick one.
const DefaultRMDStartAge = 73

// RMDCalculator calculates Required Minimum Distributions
type RMDCalculator struct {
	StartAge int
}

// NewRMDCalculator creates an RMD calculator triggering at startAge.
// A non-positive startAge falls back to DefaultRMDStartAge.
func NewRMDCalculator(startAge int) *RMDCalculator {
	if startAge <= 0 {
		startAge = DefaultRMDStartAge
	}
	return &RMDCalculator{StartAge: startAge}
}

// NewRMDCalculatorForBirthYear uses the SECURE 2.0 start age for birthYear.
func NewRMDCalculatorForBirthYear(birthYear int) *RMDCalculator {
	return NewRMDCalculator(dateutil.GetRMDAge(birthYear))
}

// GetRMDAge returns the age when RMDs start
func (rmd *RMDCalculator) GetRMDAge() int {
	return rmd.StartAge
}

// IsRMDYear reports whether a distribution is required at age.
func (rmd *RMDCalculator) IsRMDYear(age int) bool {
	return age >= rmd.StartAge
}

// RequiredMinimumDistribution returns the minimum withdrawal for the year,
// rounded half up to the cent. Negative balances are treated as empty.
func (rmd *RMDCalculator) RequiredMinimumDistribution(traditionalBalance decimal.Decimal, age int) decimal.Decimal {
	if !rmd.IsRMDYear(age) || !traditionalBalance.IsPositive() {
		return decimal.Zero
	}
	return money.Min(money.Cents(traditionalBalance.Div(DivisorFor(age))), traditionalBalance)
}

// RequiredMinimumDistribution computes an RMD with the default start age.
func RequiredMinimumDistribution(traditionalBalance decimal.Decimal, age int) decimal.Decimal {
	return NewRMDCalculator(DefaultRMDStartAge).RequiredMinimumDistribution(traditionalBalance, age)
}

// RMDScheduleEntry is one row of a standalone RMD schedule.
type RMDScheduleEntry struct {
	Age              int             `json:"age"`
	BeginningBalance decimal.Decimal `json:"beginningBalance"`
	Divisor          decimal.Decimal `json:"divisor"`
	Distribution     decimal.Decimal `json:"distribution"`
	EndingBalance    decimal.Decimal `json:"endingBalance"`
}

// ProjectRMDSchedule draws only the required minimum from balance each year,
// starting at age, for the given number of years. No growth is applied.
func (rmd *RMDCalculator) ProjectRMDSchedule(balance decimal.Decimal, age, years int) []RMDScheduleEntry {
	schedule := make([]RMDScheduleEntry, 0, years)
	current := money.NonNegative(balance)
	for i := 0; i < years; i++ {
		a := age + i
		dist := rmd.RequiredMinimumDistribution(current, a)
		var divisor decimal.Decimal
		if rmd.IsRMDYear(a) {
			divisor = DivisorFor(a)
		}
		end := money.NonNegative(current.Sub(dist))
		schedule = append(schedule, RMDScheduleEntry{
			Age:              a,
			BeginningBalance: current,
			Divisor:          divisor,
			Distribution:     dist,
			EndingBalance:    end,
		})
		current = end
	}
	return schedule
}
