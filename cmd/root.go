package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rf",
		Short:         "Refocus (rf): block distracting sites for a fixed time",
		Long:          "rf (Refocus) keeps a list of distracting sites and starts timed blocking sessions over them. Strict sessions cannot be stopped before they expire.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(context.Background())
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		return app.flushMetrics(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newSiteCmd(app),
		newUserCmd(app),
	)

	return rootCmd
}
