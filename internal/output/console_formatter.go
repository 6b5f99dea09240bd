package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
)

// ConsoleSummaryFormatter provides a concise one-line-per-plan console summary.
type ConsoleSummaryFormatter struct{}

func (c ConsoleSummaryFormatter) Name() string      { return "console-lite" }
func (c ConsoleSummaryFormatter) Extension() string { return "txt" }

func (c ConsoleSummaryFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "WITHDRAWAL PLAN SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, p := range results.Plans {
		fmt.Fprintf(&buf, "%s: FirstYear=%s AfterTax=%s Taxes=%s Funded=%d/%d Depleted=%s\n",
			p.Name,
			FormatCurrency(p.FirstYearNet),
			FormatCurrency(p.Result.TotalAfterTaxIncome),
			FormatCurrency(p.Result.TotalTaxesPaid),
			p.YearsFunded, len(p.Result.YearlyWithdrawals),
			optionalYear(p.Result.DepletionYear),
		)
	}
	if rec := AnalyzePlans(results); rec.PlanName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (+%s after tax vs next best)\n", rec.PlanName, FormatCurrency(rec.AdvantageOverNext))
	}
	return buf.Bytes(), nil
}

// ConsoleFormatter renders the detailed console report: assumptions, then a
// year-by-year table per plan.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 81)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "RETIREMENT WITHDRAWAL PLAN")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, p := range results.Plans {
		in := p.Input.Normalize()
		fmt.Fprintf(&buf, "PLAN %d: %s\n", i+1, p.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Age %d, %s, desired %s/yr, RMDs from age %d (tax year %d)\n",
			in.CurrentAge, in.FilingStatus.Label(), FormatCurrency(in.DesiredAnnualIncome), p.RMDStartAge, p.TaxYear)
		fmt.Fprintf(&buf, "Starting balances: traditional %s, Roth %s, taxable %s\n",
			FormatCurrency(in.Accounts.TraditionalBalance), FormatCurrency(in.Accounts.RothBalance), FormatCurrency(in.Accounts.TaxableBalance))
		fmt.Fprintln(&buf)

		if len(p.Result.YearlyWithdrawals) == 0 {
			fmt.Fprintln(&buf, "No withdrawals: horizon is zero or every account is empty.")
			fmt.Fprintln(&buf)
			continue
		}

		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Year\tAge\tRMD\tTraditional\tRoth\tTaxable\tTax\tAfter Tax\tShortfall\tEnd Balance\t")
		for _, y := range p.Result.YearlyWithdrawals {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				y.Year, y.Age,
				FormatCurrency(y.RequiredMinimumDistribution),
				FormatCurrency(y.TraditionalWithdrawal),
				FormatCurrency(y.RothWithdrawal),
				FormatCurrency(y.TaxableWithdrawal),
				FormatCurrency(y.TaxOwed),
				FormatCurrency(y.AfterTaxIncome),
				FormatCurrency(y.IncomeShortfall),
				FormatCurrency(y.Ending().Total()),
			)
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
		fmt.Fprintln(&buf)

		fmt.Fprintf(&buf, "Total after-tax income: %s\n", FormatCurrency(p.Result.TotalAfterTaxIncome))
		fmt.Fprintf(&buf, "Total taxes paid:       %s (effective %s)\n", FormatCurrency(p.Result.TotalTaxesPaid), FormatRate(p.EffectiveTaxRate))
		if p.Result.YearsWithShortfall > 0 {
			fmt.Fprintf(&buf, "Years short of target:  %d\n", p.Result.YearsWithShortfall)
		}
		if p.Result.DepletionYear != nil {
			fmt.Fprintf(&buf, "Accounts depleted in year %d\n", *p.Result.DepletionYear)
		}
		fmt.Fprintln(&buf)
	}

	if rec := AnalyzePlans(results); rec.PlanName != "" && len(results.Plans) > 1 {
		fmt.Fprintf(&buf, "RECOMMENDED: %s (%s after tax, %s ahead of the next plan)\n",
			rec.PlanName, FormatCurrency(rec.TotalAfterTaxIncome), FormatCurrency(rec.AdvantageOverNext))
	}
	return buf.Bytes(), nil
}
