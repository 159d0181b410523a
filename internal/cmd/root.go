package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/hephbuild/hsize/internal/hlog"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var plain bool
var debug bool
var cpuprofile string
var cpuProfileFile *os.File
var memprofile string

var levelVar slog.LevelVar

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hsize",
		Short:         "Measure the effect of size estimates on collecting iterators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				levelVar.Set(slog.LevelDebug)
			} else {
				levelVar.Set(slog.LevelInfo)
			}

			logger := hlog.NewTextLogger(cmd.ErrOrStderr(), &levelVar, plain)
			cmd.SetContext(hlog.ContextWithLogger(cmd.Context(), logger))

			if cpuprofile != "" {
				var err error
				cpuProfileFile, err = os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(cpuProfileFile); err != nil {
					return fmt.Errorf("could not start CPU profile: %w", err)
				}
			}

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			if cpuProfileFile != nil {
				pprof.StopCPUProfile()
				err := cpuProfileFile.Close()
				cpuProfileFile = nil
				if err != nil {
					hlog.From(ctx).Error("could not close cpu profile", "err", err)
					return
				}
			}

			if memprofile != "" {
				f, err := os.Create(memprofile)
				if err != nil {
					hlog.From(ctx).Error("could not create memory profile", "err", err)
					return
				}
				defer f.Close()
				runtime.GC()
				if err := pprof.WriteHeapProfile(f); err != nil {
					hlog.From(ctx).Error("could not write memory profile", "err", err)
				}
			}
		},
	}

	isTerm := isatty.IsTerminal(os.Stderr.Fd())

	rootCmd.PersistentFlags().BoolVarP(&plain, "plain", "", !isTerm, "disable colors")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "", false, "enable debug log")

	rootCmd.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "CPU Profile file")
	rootCmd.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Memory Profile file")

	rootCmd.AddCommand(newBenchCmd(), newScenariosCmd())

	return rootCmd
}

func Execute() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		hlog.NewTextLogger(os.Stderr, &levelVar, plain).Error(err.Error())
		return 1
	}

	return 0
}
