package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/conversn-io/seniorsimple-sub003/internal/config"
	"github.com/conversn-io/seniorsimple-sub003/internal/output"
)

func newPlanCommand(opts *globalOptions) *cobra.Command {
	var inputPath, format, outputPath, rulesPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Simulate withdrawals for every plan in a plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.LookupFormatter(format)
			if err != nil {
				return err
			}

			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}
			cfg, err := config.NewInputParser().LoadFromFile(inputPath)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngineWithRules(rules)
			engine.SetLogger(calculation.NewZapLogger(opts.logger))
			results, err := engine.RunPlans(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("running plans: %w", err)
			}

			if outputPath == "" && !output.IsBinary(formatter) {
				return output.GenerateReport(cmd.OutOrStdout(), results, formatter.Name())
			}
			written, err := output.WriteFormatted(formatter, results, outputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "plan file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format: json, csv, detailed-csv, console, console-lite, html, pdf")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "tax rules file overriding the built-in 2025 rules")

	return cmd
}
