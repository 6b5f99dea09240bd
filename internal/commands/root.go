package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conversn-io/seniorsimple-sub003/internal/buildinfo"
	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/conversn-io/seniorsimple-sub003/internal/config"
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
)

// globalOptions holds state shared by every subcommand.
type globalOptions struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:     "planner",
		Short:   "Retirement withdrawal, RMD and federal tax planner",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			switch {
			case opts.verbose:
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			case cmd.Name() == "serve":
				cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
			default:
				// one-shot commands only surface problems
				cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newPlanCommand(opts),
		newRMDCommand(opts),
		newTaxCommand(opts),
		newServeCommand(opts),
		newInitCommand(),
	)

	return rootCmd
}

// loadRules returns the default rules with the optional rules file layered on top.
func loadRules(path string) (domain.TaxRules, error) {
	rules := calculation.DefaultTaxRules()
	if path == "" {
		return rules, nil
	}
	overrides, err := config.NewInputParser().LoadRulesFile(path)
	if err != nil {
		return domain.TaxRules{}, err
	}
	return overrides.Apply(rules), nil
}
