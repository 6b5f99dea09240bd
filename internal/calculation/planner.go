package calculation

import (
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	money "github.com/conversn-io/seniorsimple-sub003/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Planner sequences withdrawals across traditional, Roth and taxable
// accounts year by year. It holds no per-plan state and is safe for
// concurrent use.
type Planner struct {
	Rules   domain.TaxRules
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewPlanner creates a planner using the default 2025 rules.
func NewPlanner() *Planner {
	return NewPlannerWithRules(DefaultTaxRules(), NopLogger{})
}

// NewPlannerWithRules creates a planner over rules. A nil logger is replaced by NopLogger.
func NewPlannerWithRules(rules domain.TaxRules, logger Logger) *Planner {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Planner{
		Rules:   rules,
		TaxCalc: NewTaxCalculator(rules),
		Logger:  logger,
	}
}

// RMDCalculatorFor picks the RMD start age for input: an explicit rule
// wins, then the birth year, then DefaultRMDStartAge.
func (p *Planner) RMDCalculatorFor(input domain.PlanningInput) *RMDCalculator {
	switch {
	case p.Rules.RMDStartAge > 0:
		return NewRMDCalculator(p.Rules.RMDStartAge)
	case input.BirthYear > 0:
		return NewRMDCalculatorForBirthYear(input.BirthYear)
	default:
		return NewRMDCalculator(DefaultRMDStartAge)
	}
}

// PlanWithdrawals simulates up to HorizonYears years of withdrawals.
// Negative inputs are clamped to zero. Simulation stops early once every
// balance is empty; the year that empties them is still emitted.
func (p *Planner) PlanWithdrawals(input domain.PlanningInput) domain.PlanningResult {
	input = input.Normalize()
	rmdCalc := p.RMDCalculatorFor(input)

	result := domain.PlanningResult{
		YearlyWithdrawals:   make([]domain.YearlyWithdrawal, 0, input.HorizonYears),
		TotalTaxesPaid:      decimal.Zero,
		TotalAfterTaxIncome: decimal.Zero,
	}

	balances := input.Accounts
	for i := 0; i < input.HorizonYears; i++ {
		if balances.IsDepleted() {
			break
		}

		row := p.planYear(balances, input.CurrentAge+i, input.DesiredAnnualIncome, input.FilingStatus, rmdCalc)
		row.Year = yearLabel(input.StartYear, i)

		p.Logger.Debugf("year %d age %d: trad=%s roth=%s taxable=%s rmd=%s tax=%s",
			row.Year, row.Age,
			row.TraditionalWithdrawal.StringFixed(2), row.RothWithdrawal.StringFixed(2),
			row.TaxableWithdrawal.StringFixed(2), row.RequiredMinimumDistribution.StringFixed(2),
			row.TaxOwed.StringFixed(2))

		result.YearlyWithdrawals = append(result.YearlyWithdrawals, row)
		result.TotalTaxesPaid = result.TotalTaxesPaid.Add(row.TaxOwed)
		result.TotalAfterTaxIncome = result.TotalAfterTaxIncome.Add(row.AfterTaxIncome)
		if row.IncomeShortfall.IsPositive() {
			result.YearsWithShortfall++
		}

		balances = row.Ending()
		if balances.IsDepleted() {
			year := row.Year
			result.DepletionYear = &year
		}
	}

	p.Logger.Infof("planned %d years: taxes=%s after-tax income=%s shortfall years=%d",
		len(result.YearlyWithdrawals), result.TotalTaxesPaid.StringFixed(2),
		result.TotalAfterTaxIncome.StringFixed(2), result.YearsWithShortfall)

	return result
}

// planYear decides one year's withdrawals from start balances.
func (p *Planner) planYear(start domain.AccountSnapshot, age int, desired decimal.Decimal, status domain.FilingStatus, rmdCalc *RMDCalculator) domain.YearlyWithdrawal {
	rmd := rmdCalc.RequiredMinimumDistribution(start.TraditionalBalance, age)

	var traditional, roth, taxable decimal.Decimal
	if !rmdCalc.IsRMDYear(age) {
		// taxable, then traditional, then Roth
		need := desired
		taxable, need = draw(need, start.TaxableBalance)
		traditional, need = draw(need, start.TraditionalBalance)
		roth, _ = draw(need, start.RothBalance)
	} else {
		// RMD is a floor on the traditional draw; the rest comes from taxable, then Roth.
		preferred, _ := draw(money.NonNegative(desired.Sub(start.TaxableBalance)), start.TraditionalBalance)
		traditional = money.Min(money.Max(rmd, preferred), start.TraditionalBalance)
		need := money.NonNegative(desired.Sub(traditional))
		taxable, need = draw(need, start.TaxableBalance)
		roth, _ = draw(need, start.RothBalance)
	}

	recognized := p.TaxCalc.RecognizedIncome(traditional, taxable)
	tax := p.TaxCalc.TaxOwed(recognized, status)
	gross := traditional.Add(roth).Add(taxable)

	return domain.YearlyWithdrawal{
		Age:                         age,
		TraditionalWithdrawal:       traditional,
		RothWithdrawal:              roth,
		TaxableWithdrawal:           taxable,
		TaxableIncomeRecognized:     recognized,
		TaxOwed:                     tax,
		AfterTaxIncome:              gross.Sub(tax),
		EndingTraditionalBalance:    money.NonNegative(start.TraditionalBalance.Sub(traditional)),
		EndingRothBalance:           money.NonNegative(start.RothBalance.Sub(roth)),
		EndingTaxableBalance:        money.NonNegative(start.TaxableBalance.Sub(taxable)),
		RequiredMinimumDistribution: rmd,
		IncomeShortfall:             money.NonNegative(desired.Sub(gross)),
	}
}

// draw takes up to need from balance and returns the amount taken and the unmet remainder.
func draw(need, balance decimal.Decimal) (taken, remaining decimal.Decimal) {
	taken = money.Min(money.NonNegative(need), money.NonNegative(balance))
	return taken, money.NonNegative(need.Sub(taken))
}

func yearLabel(startYear, index int) int {
	if startYear > 0 {
		return startYear + index
	}
	return index + 1
}

// PlanWithdrawals runs a plan under the default rules.
func PlanWithdrawals(input domain.PlanningInput) domain.PlanningResult {
	return NewPlanner().PlanWithdrawals(input)
}
