package cmd

import (
	"fmt"

	statusadapter "github.com/bnema/refocus-cli/internal/adapters/render/status"
	"github.com/bnema/refocus-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or edit account details",
	}

	cmd.AddCommand(
		newUserShowCmd(app),
		newUserSetCmd(app),
	)

	return cmd
}

func newUserShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show account details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.profile.GetUser(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "username: %s\n", statusadapter.Sanitize(user.Username))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "email: %s\n", statusadapter.Sanitize(user.Email))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "phone: %s\n", statusadapter.Sanitize(user.Phone))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile picture: %s\n", statusadapter.Sanitize(user.ProfilePic))
			return nil
		},
	}
}

func newUserSetCmd(app *app) *cobra.Command {
	var username string
	var email string
	var phone string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update account details",
		Long:  "Update account details. Empty --username or --email values are ignored; --phone \"\" clears the phone number.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			update := domain.UserUpdate{Username: username, Email: email}
			if cmd.Flags().Changed("phone") {
				update.Phone = &phone
			}

			if err := app.profile.UpdateUser(cmd.Context(), update); err != nil {
				return fmt.Errorf("update user: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Account details saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")

	return cmd
}
