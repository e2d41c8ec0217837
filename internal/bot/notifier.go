// Package bot delivers fired reminders to the user.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"productivity-manager/internal/model"
	"productivity-manager/internal/service"
)

// WriterNotifier prints each reminder message on its own line.
type WriterNotifier struct {
	w io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, _ model.Session, reminders []service.Reminder) error {
	for _, r := range reminders {
		if _, err := fmt.Fprintln(n.w, r.Message()); err != nil {
			return err
		}
	}
	return nil
}

// LogNotifier writes reminders to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, session model.Session, reminders []service.Reminder) error {
	for _, r := range reminders {
		n.logger.Info(r.Message(),
			zap.String("username", session.Username),
			zap.String("task_id", r.TaskID),
			zap.Time("fired_at", r.FiredAt))
	}
	return nil
}

// Fanout hands reminders to every notifier and joins their errors.
type Fanout []service.Notifier

func (f Fanout) Notify(ctx context.Context, session model.Session, reminders []service.Reminder) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, session, reminders); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
