package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/refocus-cli/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	Active           bool       `json:"active"`
	Strict           bool       `json:"strict"`
	Until            *time.Time `json:"until"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	Sites            []string   `json:"sites"`
	BlockedSites     []string   `json:"blocked_sites"`
	DataFile         string     `json:"data_file"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the blocking session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.blocking.Status(cmd.Context())
			if err != nil {
				return err
			}

			blockedSites, err := app.sites.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				out := statusOutput{
					Active:           status.Active,
					Strict:           status.Strict,
					RemainingSeconds: int64(status.Remaining / time.Second),
					Sites:            status.Sites,
					BlockedSites:     blockedSites,
					DataFile:         app.store.Path(),
				}
				if status.Active {
					until := status.Until
					out.Until = &until
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			rendered, err := app.statusRenderer(status, blockedSites, statusadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")

	return cmd
}
