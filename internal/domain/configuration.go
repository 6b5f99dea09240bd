package domain

// DefaultPlanName labels the plan given by the top-level planning block.
const DefaultPlanName = "plan"

// Plan pairs an input with optional rule overrides.
type Plan struct {
	Name     string         `yaml:"name" json:"name"`
	Planning PlanningInput  `yaml:"planning" json:"planning"`
	TaxRules *TaxRulesInput `yaml:"tax_rules,omitempty" json:"taxRules,omitempty"`
}

// Configuration is the document shape of plan files. A file may carry a
// single top-level planning block, a list of named plans, or both.
type Configuration struct {
	TaxRules *TaxRulesInput `yaml:"tax_rules,omitempty" json:"taxRules,omitempty"`
	Planning *PlanningInput `yaml:"planning,omitempty" json:"planning,omitempty"`
	Plans    []Plan         `yaml:"plans,omitempty" json:"plans,omitempty"`
}

// AllPlans returns every plan in file order, the top-level block first.
func (c *Configuration) AllPlans() []Plan {
	plans := make([]Plan, 0, len(c.Plans)+1)
	if c.Planning != nil {
		plans = append(plans, Plan{Name: DefaultPlanName, Planning: *c.Planning})
	}
	return append(plans, c.Plans...)
}
