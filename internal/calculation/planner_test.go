package calculation

import (
	"math"
	"testing"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func planningInput(age int, desired, traditional, roth, taxable int64) domain.PlanningInput {
	return domain.PlanningInput{
		CurrentAge:          age,
		FilingStatus:        domain.Single,
		DesiredAnnualIncome: dec(desired),
		Accounts: domain.AccountSnapshot{
			TraditionalBalance: dec(traditional),
			RothBalance:        dec(roth),
			TaxableBalance:     dec(taxable),
		},
		HorizonYears: domain.DefaultHorizonYears,
	}
}

func TestPlanWithdrawalsDeterministic(t *testing.T) {
	input := planningInput(70, 80000, 900000, 200000, 150000)
	first := PlanWithdrawals(input)
	second := PlanWithdrawals(input)
	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Fatalf("plans differ (-first +second):\n%s", diff)
	}
}

func TestPlanWithdrawalsLedgerInvariants(t *testing.T) {
	inputs := map[string]domain.PlanningInput{
		"balanced":        planningInput(70, 80000, 900000, 200000, 150000),
		"traditional":     planningInput(72, 40000, 1200000, 0, 0),
		"roth heavy":      planningInput(66, 90000, 100000, 800000, 20000),
		"large RMD":       planningInput(85, 5000, 2000000, 0, 10000),
		"joint high draw": planningInput(60, 250000, 500000, 500000, 500000),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			planner := NewPlanner()
			rmdCalc := planner.RMDCalculatorFor(input)
			result := planner.PlanWithdrawals(input)
			require.NotEmpty(t, result.YearlyWithdrawals)

			start := input.Accounts
			taxes, net := decimal.Zero, decimal.Zero
			for i, row := range result.YearlyWithdrawals {
				assert.Equal(t, input.CurrentAge+i, row.Age)
				assert.Equal(t, i+1, row.Year)

				for _, v := range []decimal.Decimal{
					row.TraditionalWithdrawal, row.RothWithdrawal, row.TaxableWithdrawal,
					row.TaxOwed, row.EndingTraditionalBalance, row.EndingRothBalance,
					row.EndingTaxableBalance, row.IncomeShortfall,
				} {
					assert.False(t, v.IsNegative(), "year %d has a negative amount", row.Year)
				}

				assert.True(t, row.EndingTraditionalBalance.Equal(start.TraditionalBalance.Sub(row.TraditionalWithdrawal)), "year %d traditional", row.Year)
				assert.True(t, row.EndingRothBalance.Equal(start.RothBalance.Sub(row.RothWithdrawal)), "year %d roth", row.Year)
				assert.True(t, row.EndingTaxableBalance.Equal(start.TaxableBalance.Sub(row.TaxableWithdrawal)), "year %d taxable", row.Year)
				assert.True(t, row.AfterTaxIncome.Equal(row.TotalWithdrawal().Sub(row.TaxOwed)), "year %d net", row.Year)

				rmd := rmdCalc.RequiredMinimumDistribution(start.TraditionalBalance, row.Age)
				assert.True(t, row.RequiredMinimumDistribution.Equal(rmd))
				assert.True(t, row.TraditionalWithdrawal.GreaterThanOrEqual(rmd), "year %d below RMD", row.Year)

				taxes = taxes.Add(row.TaxOwed)
				net = net.Add(row.AfterTaxIncome)
				start = row.Ending()
			}

			assert.True(t, taxes.Equal(result.TotalTaxesPaid))
			assert.True(t, net.Equal(result.TotalAfterTaxIncome))
		})
	}
}

func TestPlanWithdrawalsDepletion(t *testing.T) {
	input := planningInput(60, 50000, 0, 0, 600000)
	result := PlanWithdrawals(input)

	require.Len(t, result.YearlyWithdrawals, 12)
	require.NotNil(t, result.DepletionYear)
	assert.Equal(t, 12, *result.DepletionYear)
	assert.True(t, result.YearlyWithdrawals[11].Ending().IsDepleted())
	// 7,500 of recognized gains each year stays under the deduction
	assert.True(t, result.TotalTaxesPaid.IsZero())
	assert.Equal(t, "600000.00", result.TotalAfterTaxIncome.StringFixed(2))
	assert.Zero(t, result.YearsWithShortfall)
}

func TestPlanWithdrawalsPreRMDOrdering(t *testing.T) {
	input := planningInput(65, 60000, 400000, 150000, 200000)
	result := PlanWithdrawals(input)
	require.NotEmpty(t, result.YearlyWithdrawals)

	first := result.YearlyWithdrawals[0]
	assert.Equal(t, "60000.00", first.TaxableWithdrawal.StringFixed(2))
	assert.True(t, first.TraditionalWithdrawal.IsZero())
	assert.True(t, first.RothWithdrawal.IsZero())
	assert.Equal(t, "9000.00", first.TaxableIncomeRecognized.StringFixed(2))
	assert.True(t, first.TaxOwed.IsZero())
	assert.True(t, first.RequiredMinimumDistribution.IsZero())

	// year 4 spends the last 20,000 of taxable and 40,000 of traditional
	fourth := result.YearlyWithdrawals[3]
	assert.Equal(t, "20000.00", fourth.TaxableWithdrawal.StringFixed(2))
	assert.Equal(t, "40000.00", fourth.TraditionalWithdrawal.StringFixed(2))
	assert.True(t, fourth.RothWithdrawal.IsZero())
}

func TestPlanWithdrawalsRMDYear(t *testing.T) {
	t.Run("RMD covers part of the need", func(t *testing.T) {
		input := planningInput(75, 30000, 500000, 0, 100000)
		row := PlanWithdrawals(input).YearlyWithdrawals[0]

		assert.Equal(t, "20325.20", row.RequiredMinimumDistribution.StringFixed(2))
		assert.Equal(t, "20325.20", row.TraditionalWithdrawal.StringFixed(2))
		assert.Equal(t, "9674.80", row.TaxableWithdrawal.StringFixed(2))
		assert.Equal(t, "21776.42", row.TaxableIncomeRecognized.StringFixed(2))
		assert.Equal(t, "677.64", row.TaxOwed.StringFixed(2))
		assert.Equal(t, "29322.36", row.AfterTaxIncome.StringFixed(2))
	})

	t.Run("traditional fills what taxable cannot", func(t *testing.T) {
		input := planningInput(75, 100000, 500000, 50000, 30000)
		row := PlanWithdrawals(input).YearlyWithdrawals[0]

		assert.Equal(t, "70000.00", row.TraditionalWithdrawal.StringFixed(2))
		assert.Equal(t, "30000.00", row.TaxableWithdrawal.StringFixed(2))
		assert.True(t, row.RothWithdrawal.IsZero())
	})

	t.Run("RMD exceeds desired income", func(t *testing.T) {
		input := planningInput(80, 10000, 1000000, 0, 0)
		row := PlanWithdrawals(input).YearlyWithdrawals[0]

		assert.Equal(t, "49504.95", row.TraditionalWithdrawal.StringFixed(2))
		assert.True(t, row.TotalWithdrawal().GreaterThan(input.DesiredAnnualIncome))
		assert.True(t, row.IncomeShortfall.IsZero())
	})

	t.Run("Roth covers the remainder", func(t *testing.T) {
		input := planningInput(75, 100000, 10000, 200000, 5000)
		row := PlanWithdrawals(input).YearlyWithdrawals[0]

		assert.Equal(t, "10000.00", row.TraditionalWithdrawal.StringFixed(2))
		assert.Equal(t, "5000.00", row.TaxableWithdrawal.StringFixed(2))
		assert.Equal(t, "85000.00", row.RothWithdrawal.StringFixed(2))
	})
}

func TestPlanWithdrawalsShortfall(t *testing.T) {
	input := planningInput(65, 100000, 0, 0, 50000)
	input.HorizonYears = 5
	result := PlanWithdrawals(input)

	require.Len(t, result.YearlyWithdrawals, 1)
	assert.Equal(t, "50000.00", result.YearlyWithdrawals[0].IncomeShortfall.StringFixed(2))
	assert.Equal(t, 1, result.YearsWithShortfall)
	require.NotNil(t, result.DepletionYear)
	assert.Equal(t, 1, *result.DepletionYear)
}

func TestPlanWithdrawalsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input domain.PlanningInput
	}{
		{"zero horizon", func() domain.PlanningInput {
			in := planningInput(70, 50000, 100000, 100000, 100000)
			in.HorizonYears = 0
			return in
		}()},
		{"negative horizon", func() domain.PlanningInput {
			in := planningInput(70, 50000, 100000, 100000, 100000)
			in.HorizonYears = -3
			return in
		}()},
		{"no balances", planningInput(70, 50000, 0, 0, 0)},
		{"negative balances clamp", planningInput(70, 50000, -100, -200, -300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PlanWithdrawals(tt.input)
			assert.Empty(t, result.YearlyWithdrawals)
			assert.True(t, result.TotalTaxesPaid.IsZero())
			assert.True(t, result.TotalAfterTaxIncome.IsZero())
			assert.Nil(t, result.DepletionYear)
		})
	}
}

func TestPlanWithdrawalsHugeHorizon(t *testing.T) {
	// nothing depletes, so the capped horizon ends the simulation
	input := planningInput(60, 0, 0, 500000, 0)
	input.HorizonYears = math.MaxInt

	var result domain.PlanningResult
	require.NotPanics(t, func() { result = PlanWithdrawals(input) })
	require.Len(t, result.YearlyWithdrawals, domain.MaxHorizonYears)
	assert.Equal(t, 60+domain.MaxHorizonYears-1, result.YearlyWithdrawals[domain.MaxHorizonYears-1].Age)
	assert.Nil(t, result.DepletionYear)

	input = planningInput(70, 50000, 200000, 100000, 100000)
	input.HorizonYears = math.MaxInt
	require.NotPanics(t, func() { result = PlanWithdrawals(input) })
	require.NotNil(t, result.DepletionYear)
	assert.Len(t, result.YearlyWithdrawals, *result.DepletionYear)
}

func TestPlanWithdrawalsClampsNegativeDesiredIncome(t *testing.T) {
	input := planningInput(65, -1000, 100000, 0, 100000)
	input.HorizonYears = 3
	result := PlanWithdrawals(input)

	require.Len(t, result.YearlyWithdrawals, 3)
	for _, row := range result.YearlyWithdrawals {
		assert.True(t, row.TotalWithdrawal().IsZero())
		assert.True(t, row.IncomeShortfall.IsZero())
	}
}

func TestPlanWithdrawalsStartYearAndBirthYear(t *testing.T) {
	input := planningInput(73, 20000, 300000, 0, 0)
	input.StartYear = 2035
	input.BirthYear = 1962
	input.HorizonYears = 3

	result := PlanWithdrawals(input)
	require.Len(t, result.YearlyWithdrawals, 3)
	assert.Equal(t, 2035, result.YearlyWithdrawals[0].Year)
	assert.Equal(t, 2037, result.YearlyWithdrawals[2].Year)
	// born 1962: RMDs begin at 75
	assert.False(t, result.YearlyWithdrawals[0].IsRMDYear())
	assert.False(t, result.YearlyWithdrawals[1].IsRMDYear())
	assert.True(t, result.YearlyWithdrawals[2].IsRMDYear())
}

func TestPlannerRulesOverrideRMDAge(t *testing.T) {
	age := 72
	rules := domain.TaxRulesInput{RMDStartAge: &age}.Apply(DefaultTaxRules())
	planner := NewPlannerWithRules(rules, nil)

	input := planningInput(72, 0, 274000, 0, 0)
	input.BirthYear = 1962
	input.HorizonYears = 1
	row := planner.PlanWithdrawals(input).YearlyWithdrawals[0]
	// 274000 / 27.4
	assert.Equal(t, "10000.00", row.RequiredMinimumDistribution.StringFixed(2))
}
