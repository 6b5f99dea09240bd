package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/conversn-io/seniorsimple-sub003/internal/config"
	"github.com/conversn-io/seniorsimple-sub003/internal/output"
	money "github.com/conversn-io/seniorsimple-sub003/pkg/decimal"
)

func newRMDCommand(opts *globalOptions) *cobra.Command {
	var balanceArg string
	var age, startAge, birthYear, years int

	cmd := &cobra.Command{
		Use:   "rmd",
		Short: "Compute the required minimum distribution for a traditional balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := parseAmount("balance", balanceArg)
			if err != nil {
				return err
			}
			if age < 0 || years < 1 {
				return fmt.Errorf("%w: age cannot be negative and years must be at least 1", config.ErrInvalidInput)
			}

			calc := calculation.NewRMDCalculator(startAge)
			if startAge == 0 && birthYear > 0 {
				calc = calculation.NewRMDCalculatorForBirthYear(birthYear)
			}
			opts.logger.Sugar().Debugf("rmd: balance=%s age=%d start=%d", balance, age, calc.GetRMDAge())

			out := cmd.OutOrStdout()
			if years == 1 {
				rmd := calc.RequiredMinimumDistribution(balance, age)
				fmt.Fprintf(out, "Required minimum distribution at age %d: %s\n", age, output.FormatCurrency(rmd))
				if !calc.IsRMDYear(age) {
					fmt.Fprintf(out, "RMDs begin at age %d\n", calc.GetRMDAge())
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "Age\tBegin\tDivisor\tRMD\tEnd\t")
			for _, row := range calc.ProjectRMDSchedule(balance, age, years) {
				divisor := "-"
				if !row.Divisor.IsZero() {
					divisor = row.Divisor.StringFixed(1)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", row.Age,
					output.FormatCurrency(row.BeginningBalance), divisor,
					output.FormatCurrency(row.Distribution), output.FormatCurrency(row.EndingBalance))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&balanceArg, "balance", "", "traditional account balance at the start of the year")
	_ = cmd.MarkFlagRequired("balance")
	cmd.Flags().IntVar(&age, "age", 0, "age during the distribution year")
	_ = cmd.MarkFlagRequired("age")
	cmd.Flags().IntVar(&startAge, "start-age", 0, "age RMDs begin (default: from --birth-year, else 73)")
	cmd.Flags().IntVar(&birthYear, "birth-year", 0, "birth year used to derive the SECURE 2.0 start age")
	cmd.Flags().IntVar(&years, "years", 1, "print an RMD-only schedule for this many years")

	return cmd
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	m, err := money.NewMoneyFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s must be a number, got %q", config.ErrInvalidInput, name, raw)
	}
	if m.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: --%s cannot be negative", config.ErrInvalidInput, name)
	}
	return m.Decimal, nil
}
