// Package cli is the command-line front end of the reminder utility.
package cli

import (
	"github.com/spf13/cobra"

	"productivity-manager/internal/config"
	"productivity-manager/internal/logging"
)

// NewRootCmd builds the command tree. The App is created lazily from --config
// unless app is already set.
func NewRootCmd(version string, app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "spm",
		Short:         "Student productivity manager: profile and daily task reminders",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.Auth != nil {
				return nil
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			built, err := NewApp(cfg, logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			*app = *built
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newTaskCmd(app),
		newRemindCmd(app),
		newRunCmd(app),
	)
	return root
}
