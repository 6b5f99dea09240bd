package output

import (
	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
)

// DefaultAssumptions lists the modeling assumptions of the built-in 2025 rules,
// rendered when a comparison carries none of its own.
var DefaultAssumptions = calculation.GenerateAssumptions(calculation.DefaultTaxRules())

func assumptionsFor(results *domain.PlanComparison) []string {
	if len(results.Assumptions) > 0 {
		return results.Assumptions
	}
	return DefaultAssumptions
}
