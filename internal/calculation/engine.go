package calculation

import (
	"context"
	"fmt"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxParallelPlans bounds how many plans RunPlans simulates at once.
const maxParallelPlans = 4

// CalculationEngine runs every plan of a configuration and compares them.
type CalculationEngine struct {
	BaseRules domain.TaxRules
	Logger    Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(DefaultTaxRules())
}

// NewCalculationEngineWithRules creates an engine whose plans start from rules.
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	return &CalculationEngine{
		BaseRules: rules,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RulesFor layers the shared and per-plan overrides onto the base rules.
func (ce *CalculationEngine) RulesFor(shared *domain.TaxRulesInput, plan domain.Plan) domain.TaxRules {
	rules := ce.BaseRules.Clone()
	if shared != nil {
		rules = shared.Apply(rules)
	}
	if plan.TaxRules != nil {
		rules = plan.TaxRules.Apply(rules)
	}
	return rules
}

// RunPlan calculates a single plan under rules.
func (ce *CalculationEngine) RunPlan(ctx context.Context, plan domain.Plan, rules domain.TaxRules) (*domain.PlanSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan %q: %w", plan.Name, err)
	}

	planner := NewPlannerWithRules(rules, ce.Logger)
	result := planner.PlanWithdrawals(plan.Planning)
	return summarizePlan(plan, rules, planner.RMDCalculatorFor(plan.Planning.Normalize()), result), nil
}

// RunPlans calculates every plan in config and recommends one. Plans are
// independent and run concurrently; results keep file order.
func (ce *CalculationEngine) RunPlans(ctx context.Context, config *domain.Configuration) (*domain.PlanComparison, error) {
	plans := config.AllPlans()
	if len(plans) == 0 {
		return nil, fmt.Errorf("no plans to run")
	}

	summaries := make([]domain.PlanSummary, len(plans))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelPlans)
	for i, plan := range plans {
		eg.Go(func() error {
			rules := ce.RulesFor(config.TaxRules, plan)
			ce.Logger.Infof("running plan %q (tax year %d)", plan.Name, rules.Year)

			summary, err := ce.RunPlan(egCtx, plan, rules)
			if err != nil {
				return err
			}
			summaries[i] = *summary
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	comparison := &domain.PlanComparison{Plans: summaries}

	comparison.Recommended = RecommendPlan(comparison.Plans)
	comparison.Assumptions = GenerateAssumptions(ce.RulesFor(config.TaxRules, plans[0]))
	return comparison, nil
}
