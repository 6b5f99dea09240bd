package calculation

import (
	"fmt"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// summarizePlan condenses a plan's ledger into the metrics used for comparison.
func summarizePlan(plan domain.Plan, rules domain.TaxRules, rmdCalc *RMDCalculator, result domain.PlanningResult) *domain.PlanSummary {
	summary := &domain.PlanSummary{
		Name:             plan.Name,
		Input:            plan.Planning.Normalize(),
		RMDStartAge:      rmdCalc.GetRMDAge(),
		TaxYear:          rules.Year,
		FinalBalances:    plan.Planning.Normalize().Accounts,
		EffectiveTaxRate: result.EffectiveTaxRate(),
		Result:           result,
	}

	rows := result.YearlyWithdrawals
	if len(rows) > 0 {
		summary.FirstYearNet = rows[0].AfterTaxIncome
		summary.FinalBalances = rows[len(rows)-1].Ending()
	}
	for _, row := range rows {
		if row.IncomeShortfall.IsZero() {
			summary.YearsFunded++
		}
		if summary.FirstRMDYear == nil && row.IsRMDYear() {
			year := row.Year
			summary.FirstRMDYear = &year
		}
	}
	return summary
}

// RecommendPlan picks the plan delivering the most after-tax income.
// Ties go to the plan paying less tax, then to the earlier plan.
func RecommendPlan(plans []domain.PlanSummary) string {
	best := -1
	for i, p := range plans {
		if best < 0 {
			best = i
			continue
		}
		cur := plans[best].Result
		switch p.Result.TotalAfterTaxIncome.Cmp(cur.TotalAfterTaxIncome) {
		case 1:
			best = i
		case 0:
			if p.Result.TotalTaxesPaid.LessThan(cur.TotalTaxesPaid) {
				best = i
			}
		}
	}
	if best < 0 {
		return ""
	}
	return plans[best].Name
}

// GenerateAssumptions describes the rules a comparison ran under.
func GenerateAssumptions(rules domain.TaxRules) []string {
	single := rules.Schedule(domain.Single).StandardDeduction
	mfj := rules.Schedule(domain.MarriedFilingJointly).StandardDeduction
	mfs := rules.Schedule(domain.MarriedFilingSeparately).StandardDeduction

	rmd := "RMD start age: from birth year (SECURE 2.0), 73 when unknown"
	if rules.RMDStartAge > 0 {
		rmd = fmt.Sprintf("RMD start age: %d", rules.RMDStartAge)
	}

	return []string{
		fmt.Sprintf("Federal tax brackets: %d levels held constant (no inflation indexing)", rules.Year),
		fmt.Sprintf("Standard deduction: $%s single / $%s joint / $%s separate", single.StringFixed(0), mfj.StringFixed(0), mfs.StringFixed(0)),
		fmt.Sprintf("Taxable-account withdrawals: %s%% recognized as income", rules.AssumedGainsFraction.Mul(decimalHundred).StringFixed(1)),
		"Roth withdrawals: qualified and untaxed",
		rmd,
		"RMD divisors: IRS Uniform Lifetime Table (2022)",
		"No investment growth or inflation between years",
	}
}
