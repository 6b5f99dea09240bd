package calculation

import (
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	money "github.com/conversn-io/seniorsimple-sub003/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal Tax Brackets: 2025 brackets (Rev. Proc. 2024-40) for every projection year
//    - No inflation indexing applied to future years
//    - Standard deduction: $15,000 single / $30,000 MFJ / $15,000 MFS
//    - No additional deduction for age 65+
//
// 2. Taxable-account withdrawals: a fixed fraction (default 15%) of each
//    withdrawal is recognized as ordinary income. No cost basis is tracked.
//
// 3. Roth withdrawals are treated as qualified and untaxed.

// DefaultAssumedGainsFraction is the share of a taxable withdrawal recognized as income.
var DefaultAssumedGainsFraction = decimal.NewFromFloat(0.15)

func bracket(min, max int64, rate float64) domain.TaxBracket {
	b := domain.TaxBracket{Min: decimal.NewFromInt(min), Rate: decimal.NewFromFloat(rate)}
	if max > 0 {
		b.Max = decimal.NewFromInt(max)
	}
	return b
}

// DefaultTaxRules returns the 2025 federal rules.
func DefaultTaxRules() domain.TaxRules {
	return domain.TaxRules{
		Year: 2025,
		Schedules: map[domain.FilingStatus]domain.FilingSchedule{
			domain.Single: {
				StandardDeduction: decimal.NewFromInt(15000),
				Brackets: []domain.TaxBracket{
					bracket(0, 11925, 0.10),
					bracket(11925, 48475, 0.12),
					bracket(48475, 103350, 0.22),
					bracket(103350, 197300, 0.24),
					bracket(197300, 250525, 0.32),
					bracket(250525, 626350, 0.35),
					bracket(626350, 0, 0.37),
				},
			},
			domain.MarriedFilingJointly: {
				StandardDeduction: decimal.NewFromInt(30000),
				Brackets: []domain.TaxBracket{
					bracket(0, 23850, 0.10),
					bracket(23850, 96950, 0.12),
					bracket(96950, 206700, 0.22),
					bracket(206700, 394600, 0.24),
					bracket(394600, 501050, 0.32),
					bracket(501050, 751600, 0.35),
					bracket(751600, 0, 0.37),
				},
			},
			domain.MarriedFilingSeparately: {
				StandardDeduction: decimal.NewFromInt(15000),
				Brackets: []domain.TaxBracket{
					bracket(0, 11925, 0.10),
					bracket(11925, 48475, 0.12),
					bracket(48475, 103350, 0.22),
					bracket(103350, 197300, 0.24),
					bracket(197300, 250525, 0.32),
					bracket(250525, 375800, 0.35),
					bracket(375800, 0, 0.37),
				},
			},
		},
		AssumedGainsFraction: DefaultAssumedGainsFraction,
	}
}

// TaxCalculator computes progressive federal income tax from a rule set.
type TaxCalculator struct {
	Rules domain.TaxRules
}

// NewTaxCalculator creates a tax calculator over rules.
func NewTaxCalculator(rules domain.TaxRules) *TaxCalculator {
	return &TaxCalculator{Rules: rules}
}

// NewFederalTaxCalculator2025 creates a new federal tax calculator for 2025
func NewFederalTaxCalculator2025() *TaxCalculator {
	return NewTaxCalculator(DefaultTaxRules())
}

// StandardDeduction returns the deduction for status.
func (tc *TaxCalculator) StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	return tc.Rules.Schedule(status).StandardDeduction
}

// TaxableIncome subtracts the standard deduction, floored at zero.
func (tc *TaxCalculator) TaxableIncome(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return money.NonNegative(grossIncome.Sub(tc.StandardDeduction(status)))
}

// TaxOwed calculates federal income tax on ordinary income, rounded to the cent.
func (tc *TaxCalculator) TaxOwed(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxableIncome := tc.TaxableIncome(grossIncome, status)
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, b := range tc.Rules.Schedule(status).Brackets {
		if taxableIncome.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxableIncome
		if !b.Unbounded() {
			upper = money.Min(taxableIncome, b.Max)
		}
		incomeInBracket := upper.Sub(b.Min)
		if incomeInBracket.IsPositive() {
			totalTax = totalTax.Add(incomeInBracket.Mul(b.Rate))
		}
	}

	return money.Cents(totalTax)
}

// MarginalRate is the rate applied to the next dollar of gross income.
// It is zero while the standard deduction still absorbs income.
func (tc *TaxCalculator) MarginalRate(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	excess := grossIncome.Sub(tc.StandardDeduction(status))
	if excess.IsNegative() {
		return decimal.Zero
	}
	rate := decimal.Zero
	for _, b := range tc.Rules.Schedule(status).Brackets {
		if excess.LessThan(b.Min) {
			break
		}
		rate = b.Rate
	}
	return rate
}

// TopRate returns the highest marginal rate for status.
func (tc *TaxCalculator) TopRate(status domain.FilingStatus) decimal.Decimal {
	top := decimal.Zero
	for _, b := range tc.Rules.Schedule(status).Brackets {
		top = money.Max(top, b.Rate)
	}
	return top
}

// RecognizedIncome is the ordinary income a year's withdrawals generate:
// all of the traditional draw plus the assumed gains share of the taxable draw.
func (tc *TaxCalculator) RecognizedIncome(traditionalWithdrawal, taxableWithdrawal decimal.Decimal) decimal.Decimal {
	gains := taxableWithdrawal.Mul(tc.Rules.AssumedGainsFraction)
	return money.Cents(traditionalWithdrawal.Add(gains))
}

// TaxOwed computes tax under the default 2025 rules.
func TaxOwed(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return NewFederalTaxCalculator2025().TaxOwed(grossIncome, status)
}
