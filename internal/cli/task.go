package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"productivity-manager/internal/model"
	"productivity-manager/internal/service"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage daily tasks",
	}
	cmd.AddCommand(newTaskAddCmd(app), newTaskListCmd(app), newTaskDoneCmd(app))
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var input service.TaskInput
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task reminded daily at --time for --days days",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := app.session(ctx)
			if err != nil {
				return err
			}
			input.Name = strings.Join(args, " ")
			task, err := app.Tasks.CreateTask(ctx, session, input, app.Now())
			if err != nil {
				return createTaskError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", task.Name, task.ID)
			app.afterAction(ctx)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.ScheduledTime, "time", "", "daily reminder time, HH:MM 24h")
	cmd.Flags().IntVar(&input.DurationDays, "days", service.DefaultDurationDays, "number of days to remind")
	return cmd
}

// createTaskError adds the form hint to validation failures only.
func createTaskError(err error) error {
	if errors.Is(err, service.ErrValidation) {
		return fmt.Errorf("fill all fields: %w", err)
	}
	return err
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks with progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			session, err := app.session(ctx)
			if err != nil {
				return err
			}
			app.afterAction(ctx)
			views, err := app.Tasks.ListTasks(ctx, session, app.Now())
			if err != nil {
				return err
			}
			renderTasks(cmd.OutOrStdout(), views)
			return nil
		},
	}
}

func renderTasks(w io.Writer, views []service.TaskView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No tasks yet. Add a task to get daily reminders.")
		return
	}
	for _, v := range views {
		fmt.Fprintf(w, "%s  %s\n", v.ID, v.Name)
		fmt.Fprintf(w, "    At %s • for %d day(s) • Created %s\n",
			v.ScheduledTime, v.DurationDays, v.CreatedAt.Format(model.DateLayout))
		status := v.ProgressLabel()
		if v.Completed {
			status += " • Completed"
		} else if v.Expired {
			status += " • Expired"
		}
		fmt.Fprintf(w, "    %s\n", status)
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task completed for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := app.session(ctx)
			if err != nil {
				return err
			}
			now := app.Now()
			record, err := app.Tasks.MarkCompletedToday(ctx, session, args[0], now)
			if err != nil {
				return err
			}
			if idx := record.FindTask(args[0]); idx >= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), service.ViewOf(record.Tasks[idx], now).ProgressLabel())
			}
			app.afterAction(ctx)
			return nil
		},
	}
}
