package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"movement-sim/batch"
	"movement-sim/engine/support"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "movement-sim",
		Short: "Batch orchestrator for agent-based social-movement simulations",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run <base-path>",
		Short: "Process every configuration listed in <base-path>/runs.yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()

			b := batch.New(args[0], support.New(), log)
			b.Progress = true
			return b.Run()
		},
	}
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
