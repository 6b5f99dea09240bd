package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/conversn-io/seniorsimple-sub003/internal/output"
)

const defaultPlanFile = "plan.yaml"

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPlanFile
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			if err := output.SaveConfiguration(examplePlan(), path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// examplePlan compares drawing from a traditional-heavy mix against a
// Roth-heavy one with the same total savings.
func examplePlan() *domain.Configuration {
	base := domain.PlanningInput{
		CurrentAge:          70,
		FilingStatus:        domain.Single,
		DesiredAnnualIncome: decimal.NewFromInt(60000),
		Accounts: domain.AccountSnapshot{
			TraditionalBalance: decimal.NewFromInt(600000),
			RothBalance:        decimal.NewFromInt(200000),
			TaxableBalance:     decimal.NewFromInt(100000),
		},
		HorizonYears: domain.DefaultHorizonYears,
	}
	rothHeavy := base
	rothHeavy.Accounts = domain.AccountSnapshot{
		TraditionalBalance: decimal.NewFromInt(100000),
		RothBalance:        decimal.NewFromInt(700000),
		TaxableBalance:     decimal.NewFromInt(100000),
	}
	return &domain.Configuration{
		Planning: &base,
		Plans:    []domain.Plan{{Name: "roth-heavy", Planning: rothHeavy}},
	}
}
