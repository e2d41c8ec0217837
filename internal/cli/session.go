package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"productivity-manager/internal/service"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in, creating the user on first login",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := app.Auth.Login(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			record, err := app.Auth.Record(ctx, session)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Hello, %s\n", service.DisplayName(session, record))
			if !record.HasProfile() {
				fmt.Fprintln(out, "Profile not set. Use `spm profile set` to add one or `spm profile skip`.")
			}
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Auth.Logout(cmd.Context(), session); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			record, err := app.Auth.Record(cmd.Context(), session)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Hello, %s\n", service.DisplayName(session, record))
			fmt.Fprintln(out, service.ProfileSummary(record))
			return nil
		},
	}
}
