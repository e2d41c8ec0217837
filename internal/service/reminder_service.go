package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"productivity-manager/internal/model"
	"productivity-manager/internal/repository"
)

// MatchPolicy decides when a scheduled time counts as due.
type MatchPolicy string

const (
	// MatchExact fires only when the current minute equals the scheduled time.
	MatchExact MatchPolicy = "exact"
	// MatchWindow fires once within [scheduled, scheduled+window).
	MatchWindow MatchPolicy = "window"
)

func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch MatchPolicy(s) {
	case MatchExact, MatchWindow:
		return MatchPolicy(s), nil
	case "":
		return MatchExact, nil
	default:
		return "", fmt.Errorf("unknown match policy %q", s)
	}
}

// Reminder is one notification decided by an evaluation.
type Reminder struct {
	TaskID        string
	TaskName      string
	ScheduledTime string
	FiredAt       time.Time
}

// Message is the notification text shown to the user.
func (r Reminder) Message() string {
	return fmt.Sprintf("Reminder: %s (scheduled at %s)", r.TaskName, r.ScheduledTime)
}

// LogLine is the reminder log entry.
func (r Reminder) LogLine() string {
	return fmt.Sprintf("Reminded %s at %s", r.TaskName, r.FiredAt.Format(model.ClockLayout))
}

// Evaluator decides which tasks are due at an instant.
type Evaluator struct {
	Policy MatchPolicy
	Window time.Duration
}

func (e Evaluator) due(task model.Task, now time.Time) bool {
	if e.Policy != MatchWindow {
		return task.ScheduledTime == now.Format(model.ClockLayout)
	}
	at, err := task.ScheduledOn(now)
	if err != nil {
		return false
	}
	return !now.Before(at) && now.Before(at.Add(e.Window))
}

// Evaluate stamps every due task on record and returns the reminders in task order.
// Calling it again on the same calendar date fires nothing new.
func (e Evaluator) Evaluate(record *model.UserRecord, now time.Time) []Reminder {
	today := model.DateOf(now)
	var fired []Reminder
	for i := range record.Tasks {
		task := &record.Tasks[i]
		if task.Expired(now) || !e.due(*task, now) || task.RemindedOn(today) || task.CompletedOn(today) {
			continue
		}
		stamp := today
		task.LastRemindedDate = &stamp
		fired = append(fired, Reminder{
			TaskID:        task.ID,
			TaskName:      task.Name,
			ScheduledTime: task.ScheduledTime,
			FiredAt:       now,
		})
	}
	return fired
}

// Notifier delivers fired reminders to the user.
type Notifier interface {
	Notify(ctx context.Context, session model.Session, reminders []Reminder) error
}

// ReminderService runs evaluations against the stored record and hands the result to a notifier.
type ReminderService struct {
	users     *repository.UserRepository
	evaluator Evaluator
	notifier  Notifier
	logger    *zap.Logger
}

func NewReminderService(users *repository.UserRepository, evaluator Evaluator, notifier Notifier, logger *zap.Logger) *ReminderService {
	return &ReminderService{users: users, evaluator: evaluator, notifier: notifier, logger: logger.Named("reminder")}
}

// Check evaluates reminders for the active session. Without a session it does nothing.
func (s *ReminderService) Check(ctx context.Context, now time.Time) ([]Reminder, error) {
	session, err := s.users.LoadSession(ctx)
	if errors.Is(err, repository.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.CheckSession(ctx, session, now)
}

// CheckSession evaluates reminders for session, persists the stamps and notifies.
func (s *ReminderService) CheckSession(ctx context.Context, session model.Session, now time.Time) ([]Reminder, error) {
	var fired []Reminder
	if _, err := s.users.Update(ctx, session.Username, func(rec *model.UserRecord, exists bool) error {
		if !exists {
			return repository.ErrNoChange
		}
		fired = s.evaluator.Evaluate(rec, now)
		if len(fired) == 0 {
			return repository.ErrNoChange
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("evaluate reminders: %w", err)
	}
	if len(fired) == 0 {
		return nil, nil
	}

	for _, r := range fired {
		s.logger.Info(r.LogLine(), zap.String("username", session.Username), zap.String("task_id", r.TaskID))
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, session, fired); err != nil {
			s.logger.Warn("notify", zap.Error(err))
		}
	}
	return fired, nil
}
