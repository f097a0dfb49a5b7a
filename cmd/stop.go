package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errStopDenied = errors.New("stop denied: strict mode is active")

func newStopCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the blocking session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			active, err := app.blocking.IsActive(cmd.Context())
			if err != nil {
				return err
			}
			if !active {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No blocking session is active")
				return nil
			}

			until, _, err := app.blocking.BlockUntil(cmd.Context())
			if err != nil {
				return err
			}

			stopped, err := app.blocking.Stop(cmd.Context(), force)
			if err != nil {
				return err
			}
			if !stopped {
				return fmt.Errorf("%w until %s", errStopDenied, until.Local().Format("15:04"))
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Blocking stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Stop even if strict mode is active")

	return cmd
}
