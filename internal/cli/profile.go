package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"productivity-manager/internal/service"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the profile",
	}
	cmd.AddCommand(newProfileShowCmd(app), newProfileSetCmd(app), newProfileSkipCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile and when it can next be edited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			session, err := app.session(ctx)
			if err != nil {
				return err
			}
			record, err := app.Auth.Record(ctx, session)
			if err != nil {
				return err
			}
			now := app.Now()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, service.ProfileSummary(record))
			if service.StateOf(record, now) == service.ProfileLocked {
				window := service.CanEditProfile(record, now)
				fmt.Fprintf(out, "You can edit profile again in %d day(s).\n", window.DaysRemaining)
			}
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var input service.ProfileInput
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the profile (allowed once every 7 days)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			session, err := app.session(ctx)
			if err != nil {
				return err
			}
			_, err = app.Profiles.Save(ctx, session, input, app.Now())
			switch {
			case errors.Is(err, service.ErrValidation):
				return fmt.Errorf("fill name, class and age: %w", err)
			case err != nil:
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved. You can edit again after 7 days.")
			app.afterAction(ctx)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.ClassName, "class", "", "class")
	cmd.Flags().IntVar(&input.Age, "age", 0, "age")
	cmd.Flags().StringVar(&input.Bio, "bio", "", "short bio")
	return cmd
}

func newProfileSkipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Continue without a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			session, err := app.session(ctx)
			if err != nil {
				return err
			}
			record, err := app.Profiles.Skip(ctx, session)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hello, %s\n", service.DisplayName(session, record))
			return nil
		},
	}
}
