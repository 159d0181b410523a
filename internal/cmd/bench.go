package cmd

import (
	"github.com/hephbuild/hsize/internal/bench"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var jsonOutput bool
	var rounds int

	cmd := &cobra.Command{
		Use:               "bench [scenario...]",
		Short:             "Collect each scenario with and without its size estimates",
		Long:              "Collect each scenario with and without its size estimates.\nScenario arguments are glob patterns, all scenarios run when none is given.",
		ValidArgsFunction: validArgsScenarios,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := newSignalNotifyContext(cmd.Context())
			defer stop()

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("rounds") {
				cfg.Rounds = rounds
			}

			results, err := bench.Run(ctx, cfg, args)
			if err != nil {
				return err
			}

			if jsonOutput {
				return bench.WriteJSON(cmd.OutOrStdout(), results)
			}

			return bench.WriteText(cmd.OutOrStdout(), results, plain)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file, defaults to "+bench.ConfigFileName+" in the working directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "number of rounds per variant, overrides the config")

	return cmd
}

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the configured scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			for _, s := range cfg.Scenarios {
				cmd.Println(s.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file, defaults to "+bench.ConfigFileName+" in the working directory")

	return cmd
}
