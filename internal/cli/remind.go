package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"productivity-manager/internal/service"
)

func newRemindCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Reminder evaluation",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Evaluate reminders once for the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			session, err := app.session(ctx)
			if err != nil {
				return err
			}
			fired, err := app.Reminders.CheckSession(ctx, session, app.Now())
			if err != nil {
				return err
			}
			if len(fired) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reminders due.")
			}
			return nil
		},
	})
	return cmd
}

func newRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep checking reminders until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runReminders(ctx, app, service.NewSchedulerService(time.Local))
		},
	}
}

// runReminders checks once after the initial delay, then on every interval until ctx ends.
func runReminders(ctx context.Context, app *App, scheduler *service.SchedulerService) error {
	check := func() {
		jobCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if _, err := app.Reminders.Check(jobCtx, app.Now()); err != nil && !errors.Is(err, context.Canceled) {
			app.Logger.Warn("reminder check", zap.Error(err))
		}
	}

	if _, err := scheduler.ScheduleInterval(app.Config.ReminderInterval, check); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	scheduler.ScheduleOnce(app.Config.InitialCheckDelay, check)
	scheduler.Start()
	defer scheduler.Stop()

	app.Logger.Info("reminder loop started",
		zap.Duration("interval", app.Config.ReminderInterval),
		zap.String("policy", app.Config.MatchPolicy))
	<-ctx.Done()
	app.Logger.Info("shutdown complete")
	return nil
}
