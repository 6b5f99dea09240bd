package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/conversn-io/seniorsimple-sub003/internal/output"
)

func newTaxCommand(opts *globalOptions) *cobra.Command {
	var incomeArg, statusArg, rulesPath string

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Compute federal income tax on ordinary income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := parseAmount("income", incomeArg)
			if err != nil {
				return err
			}
			status, err := domain.ParseFilingStatus(statusArg)
			if err != nil {
				return err
			}
			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}
			opts.logger.Sugar().Debugf("tax: income=%s status=%s year=%d", income, status, rules.Year)

			tc := calculation.NewTaxCalculator(rules)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Filing status:      %s (%d rules)\n", status.Label(), rules.Year)
			fmt.Fprintf(out, "Gross income:       %s\n", output.FormatCurrency(income))
			fmt.Fprintf(out, "Standard deduction: %s\n", output.FormatCurrency(tc.StandardDeduction(status)))
			fmt.Fprintf(out, "Taxable income:     %s\n", output.FormatCurrency(tc.TaxableIncome(income, status)))
			fmt.Fprintf(out, "Tax owed:           %s\n", output.FormatCurrency(tc.TaxOwed(income, status)))
			fmt.Fprintf(out, "Marginal rate:      %s\n", output.FormatRate(tc.MarginalRate(income, status)))
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeArg, "income", "", "ordinary income before the standard deduction")
	_ = cmd.MarkFlagRequired("income")
	cmd.Flags().StringVar(&statusArg, "status", string(domain.Single), "filing status: single, mfj, mfs")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "tax rules file overriding the built-in 2025 rules")

	return cmd
}
