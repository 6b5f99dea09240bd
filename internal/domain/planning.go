package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultHorizonYears is used when a plan file omits horizon_years.
const DefaultHorizonYears = 30

// MaxHorizonYears bounds a plan's horizon; the life-expectancy table ends at 120.
const MaxHorizonYears = 100

// AccountSnapshot holds the three account balances at a point in time.
type AccountSnapshot struct {
	TraditionalBalance decimal.Decimal `yaml:"traditional_balance" json:"traditionalBalance"`
	RothBalance        decimal.Decimal `yaml:"roth_balance" json:"rothBalance"`
	TaxableBalance     decimal.Decimal `yaml:"taxable_balance" json:"taxableBalance"`
}

// Total returns the combined balance across all accounts.
func (a AccountSnapshot) Total() decimal.Decimal {
	return a.TraditionalBalance.Add(a.RothBalance).Add(a.TaxableBalance)
}

// IsDepleted reports whether every account is empty.
func (a AccountSnapshot) IsDepleted() bool {
	return !a.TraditionalBalance.IsPositive() && !a.RothBalance.IsPositive() && !a.TaxableBalance.IsPositive()
}

// PlanningInput is the complete input of one withdrawal plan.
type PlanningInput struct {
	CurrentAge          int             `yaml:"current_age" json:"currentAge"`
	FilingStatus        FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	DesiredAnnualIncome decimal.Decimal `yaml:"desired_annual_income" json:"desiredAnnualIncome"`
	Accounts            AccountSnapshot `yaml:"accounts" json:"accounts"`
	HorizonYears        int             `yaml:"horizon_years" json:"horizonYears"`

	// BirthYear, when set, derives the RMD start age (SECURE 2.0) unless the
	// tax rules pin one explicitly.
	BirthYear int `yaml:"birth_year,omitempty" json:"birthYear,omitempty"`
	// StartYear labels the first simulated year; zero numbers years from 1.
	StartYear int `yaml:"start_year,omitempty" json:"startYear,omitempty"`
}

type plainPlanningInput PlanningInput

// UnmarshalYAML applies DefaultHorizonYears when horizon_years is absent.
func (p *PlanningInput) UnmarshalYAML(value *yaml.Node) error {
	raw := plainPlanningInput{HorizonYears: DefaultHorizonYears}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = PlanningInput(raw)
	return nil
}

// UnmarshalJSON applies DefaultHorizonYears when horizonYears is absent.
func (p *PlanningInput) UnmarshalJSON(data []byte) error {
	raw := plainPlanningInput{HorizonYears: DefaultHorizonYears}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PlanningInput(raw)
	return nil
}

// Normalize clamps negative ages and amounts to zero and the horizon to
// MaxHorizonYears. The calculation core calls it instead of rejecting
// input; boundary layers validate first.
func (p PlanningInput) Normalize() PlanningInput {
	if p.CurrentAge < 0 {
		p.CurrentAge = 0
	}
	if p.HorizonYears < 0 {
		p.HorizonYears = 0
	}
	if p.HorizonYears > MaxHorizonYears {
		p.HorizonYears = MaxHorizonYears
	}
	if !p.FilingStatus.Valid() {
		p.FilingStatus = Single
	}
	p.DesiredAnnualIncome = nonNegative(p.DesiredAnnualIncome)
	p.Accounts.TraditionalBalance = nonNegative(p.Accounts.TraditionalBalance)
	p.Accounts.RothBalance = nonNegative(p.Accounts.RothBalance)
	p.Accounts.TaxableBalance = nonNegative(p.Accounts.TaxableBalance)
	return p
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// YearlyWithdrawal is one simulated year of the plan.
type YearlyWithdrawal struct {
	Year                        int             `json:"year"`
	Age                         int             `json:"age"`
	TraditionalWithdrawal       decimal.Decimal `json:"traditionalWithdrawal"`
	RothWithdrawal              decimal.Decimal `json:"rothWithdrawal"`
	TaxableWithdrawal           decimal.Decimal `json:"taxableWithdrawal"`
	TaxableIncomeRecognized     decimal.Decimal `json:"taxableIncomeRecognized"`
	TaxOwed                     decimal.Decimal `json:"taxOwed"`
	AfterTaxIncome              decimal.Decimal `json:"afterTaxIncome"`
	EndingTraditionalBalance    decimal.Decimal `json:"endingTraditionalBalance"`
	EndingRothBalance           decimal.Decimal `json:"endingRothBalance"`
	EndingTaxableBalance        decimal.Decimal `json:"endingTaxableBalance"`
	RequiredMinimumDistribution decimal.Decimal `json:"requiredMinimumDistribution"`
	IncomeShortfall             decimal.Decimal `json:"incomeShortfall"`
}

// TotalWithdrawal returns the gross amount drawn from all accounts.
func (y YearlyWithdrawal) TotalWithdrawal() decimal.Decimal {
	return y.TraditionalWithdrawal.Add(y.RothWithdrawal).Add(y.TaxableWithdrawal)
}

// Ending returns the balances left after the year's withdrawals.
func (y YearlyWithdrawal) Ending() AccountSnapshot {
	return AccountSnapshot{
		TraditionalBalance: y.EndingTraditionalBalance,
		RothBalance:        y.EndingRothBalance,
		TaxableBalance:     y.EndingTaxableBalance,
	}
}

// IsRMDYear reports whether a required distribution applied this year.
func (y YearlyWithdrawal) IsRMDYear() bool {
	return y.RequiredMinimumDistribution.IsPositive()
}

// PlanningResult is the full year-by-year ledger plus running totals.
type PlanningResult struct {
	YearlyWithdrawals   []YearlyWithdrawal `json:"yearlyWithdrawals"`
	TotalTaxesPaid      decimal.Decimal    `json:"totalTaxesPaid"`
	TotalAfterTaxIncome decimal.Decimal    `json:"totalAfterTaxIncome"`

	YearsWithShortfall int `json:"yearsWithShortfall"`
	// DepletionYear is the Year of the record that emptied every account.
	DepletionYear *int `json:"depletionYear,omitempty"`
}

// EffectiveTaxRate is total tax over total gross withdrawals, zero when nothing was withdrawn.
func (r PlanningResult) EffectiveTaxRate() decimal.Decimal {
	gross := decimal.Zero
	for _, y := range r.YearlyWithdrawals {
		gross = gross.Add(y.TotalWithdrawal())
	}
	if gross.IsZero() {
		return decimal.Zero
	}
	return r.TotalTaxesPaid.Div(gross)
}
