package output

import (
	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best plan.
type Recommendation struct {
	PlanName            string
	TotalAfterTaxIncome decimal.Decimal
	TotalTaxesPaid      decimal.Decimal
	// AdvantageOverNext is the after-tax income lead over the runner-up; zero with one plan.
	AdvantageOverNext decimal.Decimal
}

// AnalyzePlans resolves the recommended plan and its lead over the next best.
// A comparison built without a recommendation is ranked here.
func AnalyzePlans(results *domain.PlanComparison) Recommendation {
	if results == nil || len(results.Plans) == 0 {
		return Recommendation{}
	}
	name := results.Recommended
	if name == "" {
		name = calculation.RecommendPlan(results.Plans)
	}
	best, ok := results.Find(name)
	if !ok {
		return Recommendation{}
	}

	rec := Recommendation{
		PlanName:            best.Name,
		TotalAfterTaxIncome: best.Result.TotalAfterTaxIncome,
		TotalTaxesPaid:      best.Result.TotalTaxesPaid,
	}
	var runnerUp *decimal.Decimal
	for _, p := range results.Plans {
		if p.Name == best.Name {
			continue
		}
		net := p.Result.TotalAfterTaxIncome
		if runnerUp == nil || net.GreaterThan(*runnerUp) {
			runnerUp = &net
		}
	}
	if runnerUp != nil {
		rec.AdvantageOverNext = best.Result.TotalAfterTaxIncome.Sub(*runnerUp)
	}
	return rec
}
