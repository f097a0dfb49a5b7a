package cmd

import (
	"fmt"
	"strings"

	statusadapter "github.com/bnema/refocus-cli/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

func newSiteCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage the blocked-site list",
	}

	cmd.AddCommand(
		newSiteListCmd(app),
		newSiteAddCmd(app),
		newSiteRemoveCmd(app),
	)

	return cmd
}

func newSiteListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blocked sites",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sites, err := app.sites.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(sites) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No sites")
				return nil
			}
			for _, site := range sites {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), statusadapter.Sanitize(site))
			}
			return nil
		},
	}
}

func newSiteAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add URL...",
		Short: "Add sites to the blocked list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, site := range args {
				if err := app.sites.Add(cmd.Context(), site); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", statusadapter.Sanitize(strings.TrimSpace(site)))
			}
			return nil
		},
	}
}

func newSiteRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove URL...",
		Aliases: []string{"rm", "del"},
		Short:   "Remove sites from the blocked list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, site := range args {
				if err := app.sites.Remove(cmd.Context(), site); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", statusadapter.Sanitize(strings.TrimSpace(site)))
			}
			return nil
		},
	}
}
