package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket represents one marginal tier, applying Rate to income in [Min, Max).
// A zero Max marks the unbounded top bracket.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.Max.IsZero()
}

// FilingSchedule is the deduction and bracket table for one filing status.
type FilingSchedule struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	Brackets          []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// TaxRules is the resolved rule set the calculators run on.
type TaxRules struct {
	Year      int                             `yaml:"year" json:"year"`
	Schedules map[FilingStatus]FilingSchedule `yaml:"schedules" json:"schedules"`

	// RMDStartAge of zero defers to the birth year (or the engine default).
	RMDStartAge int `yaml:"rmd_start_age" json:"rmdStartAge"`
	// AssumedGainsFraction is the share of a taxable-account withdrawal
	// recognized as income, standing in for cost-basis tracking.
	AssumedGainsFraction decimal.Decimal `yaml:"assumed_gains_fraction" json:"assumedGainsFraction"`
}

// Schedule returns the schedule for fs, falling back to Single.
func (r TaxRules) Schedule(fs FilingStatus) FilingSchedule {
	if s, ok := r.Schedules[fs]; ok {
		return s
	}
	return r.Schedules[Single]
}

// Clone returns a copy that shares no slices or maps with r.
func (r TaxRules) Clone() TaxRules {
	out := r
	out.Schedules = make(map[FilingStatus]FilingSchedule, len(r.Schedules))
	for fs, s := range r.Schedules {
		out.Schedules[fs] = FilingSchedule{
			StandardDeduction: s.StandardDeduction,
			Brackets:          append([]TaxBracket(nil), s.Brackets...),
		}
	}
	return out
}

// TaxRulesInput is the override document accepted in plan and rules files.
// Unset fields keep the base rules.
type TaxRulesInput struct {
	Year                    *int             `yaml:"year,omitempty" json:"year,omitempty"`
	StandardDeductionSingle *decimal.Decimal `yaml:"standard_deduction_single,omitempty" json:"standardDeductionSingle,omitempty"`
	StandardDeductionMFJ    *decimal.Decimal `yaml:"standard_deduction_mfj,omitempty" json:"standardDeductionMfj,omitempty"`
	StandardDeductionMFS    *decimal.Decimal `yaml:"standard_deduction_mfs,omitempty" json:"standardDeductionMfs,omitempty"`
	BracketsSingle          []TaxBracket     `yaml:"brackets_single,omitempty" json:"bracketsSingle,omitempty"`
	BracketsMFJ             []TaxBracket     `yaml:"brackets_mfj,omitempty" json:"bracketsMfj,omitempty"`
	BracketsMFS             []TaxBracket     `yaml:"brackets_mfs,omitempty" json:"bracketsMfs,omitempty"`
	RMDStartAge             *int             `yaml:"rmd_start_age,omitempty" json:"rmdStartAge,omitempty"`
	AssumedGainsFraction    *decimal.Decimal `yaml:"assumed_gains_fraction,omitempty" json:"assumedGainsFraction,omitempty"`
}

// Apply layers the overrides onto base and returns the merged rules.
func (in TaxRulesInput) Apply(base TaxRules) TaxRules {
	out := base.Clone()
	if in.Year != nil {
		out.Year = *in.Year
	}
	override := func(fs FilingStatus, std *decimal.Decimal, brackets []TaxBracket) {
		if std == nil && len(brackets) == 0 {
			return
		}
		s := out.Schedules[fs]
		if std != nil {
			s.StandardDeduction = *std
		}
		if len(brackets) > 0 {
			s.Brackets = append([]TaxBracket(nil), brackets...)
		}
		out.Schedules[fs] = s
	}
	override(Single, in.StandardDeductionSingle, in.BracketsSingle)
	override(MarriedFilingJointly, in.StandardDeductionMFJ, in.BracketsMFJ)
	override(MarriedFilingSeparately, in.StandardDeductionMFS, in.BracketsMFS)
	if in.RMDStartAge != nil {
		out.RMDStartAge = *in.RMDStartAge
	}
	if in.AssumedGainsFraction != nil {
		out.AssumedGainsFraction = *in.AssumedGainsFraction
	}
	return out
}
