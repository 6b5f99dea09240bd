package domain

import (
	"github.com/shopspring/decimal"
)

// PlanSummary provides a summary of key metrics for one plan
type PlanSummary struct {
	Name             string          `json:"name"`
	Input            PlanningInput   `json:"input"`
	RMDStartAge      int             `json:"rmdStartAge"`
	TaxYear          int             `json:"taxYear"`
	FirstYearNet     decimal.Decimal `json:"firstYearAfterTaxIncome"`
	YearsFunded      int             `json:"yearsFunded"`
	FinalBalances    AccountSnapshot `json:"finalBalances"`
	EffectiveTaxRate decimal.Decimal `json:"effectiveTaxRate"`
	FirstRMDYear     *int            `json:"firstRmdYear,omitempty"`
	Result           PlanningResult  `json:"result"`
}

// PlanComparison provides a comparison of all plans in a configuration
type PlanComparison struct {
	Plans       []PlanSummary `json:"plans"`
	Recommended string        `json:"recommended,omitempty"`
	Assumptions []string      `json:"assumptions"`
}

// Find returns the summary named name.
func (pc *PlanComparison) Find(name string) (PlanSummary, bool) {
	for _, p := range pc.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return PlanSummary{}, false
}
