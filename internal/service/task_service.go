package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"productivity-manager/internal/model"
	"productivity-manager/internal/repository"
)

// DefaultDurationDays is suggested for new tasks when the caller has no value.
const DefaultDurationDays = 7

// TaskInput represents data required to create a task.
type TaskInput struct {
	Name          string
	ScheduledTime string
	DurationDays  int
}

// TaskView is a task together with the values derived for display.
type TaskView struct {
	model.Task
	CompletedCount int
	Progress       float64
	Completed      bool
	Expired        bool
}

// ProgressLabel renders "Progress: n/d days".
func (v TaskView) ProgressLabel() string {
	return fmt.Sprintf("Progress: %d/%d days", v.CompletedCount, v.DurationDays)
}

// ViewOf derives the display values of task at now.
func ViewOf(task model.Task, now time.Time) TaskView {
	return TaskView{
		Task:           task,
		CompletedCount: task.CompletedCount(),
		Progress:       task.Progress(),
		Completed:      task.Completed(),
		Expired:        task.Expired(now),
	}
}

func newTaskID() string {
	return "t_" + uuid.NewString()
}

// NewTask validates input and builds a task created at now.
func NewTask(input TaskInput, now time.Time, id string) (model.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Task{}, invalid("name", "is required")
	}
	clock := strings.TrimSpace(input.ScheduledTime)
	if clock == "" {
		return model.Task{}, invalid("time", "is required")
	}
	if _, _, err := model.ParseClock(clock); err != nil {
		return model.Task{}, invalid("time", err.Error())
	}
	if input.DurationDays <= 0 {
		return model.Task{}, invalid("days", "must be a positive number")
	}

	return model.Task{
		ID:             id,
		Name:           name,
		ScheduledTime:  clock,
		DurationDays:   input.DurationDays,
		CreatedAt:      now,
		CompletedDates: []string{},
	}, nil
}

// CompleteToday records the calendar date of now on the task with taskID.
func CompleteToday(record *model.UserRecord, taskID string, now time.Time) (model.Task, error) {
	idx := record.FindTask(taskID)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	task := &record.Tasks[idx]
	today := model.DateOf(now)
	if task.CompletedOn(today) {
		return *task, ErrDuplicateCompletion
	}
	task.CompletedDates = append(task.CompletedDates, today)
	return *task, nil
}

// TaskService wraps task-related business logic.
type TaskService struct {
	users  *repository.UserRepository
	logger *zap.Logger
	newID  func() string
}

func NewTaskService(users *repository.UserRepository, logger *zap.Logger) *TaskService {
	return &TaskService{users: users, logger: logger.Named("task"), newID: newTaskID}
}

// CreateTask appends a new task to the session user's list.
func (s *TaskService) CreateTask(ctx context.Context, session model.Session, input TaskInput, now time.Time) (model.Task, error) {
	task, err := NewTask(input, now, s.newID())
	if err != nil {
		return model.Task{}, err
	}
	if _, err := s.users.Update(ctx, session.Username, func(rec *model.UserRecord, _ bool) error {
		rec.Tasks = append(rec.Tasks, task)
		return nil
	}); err != nil {
		return model.Task{}, err
	}
	s.logger.Info("task created",
		zap.String("username", session.Username),
		zap.String("task_id", task.ID),
		zap.String("time", task.ScheduledTime),
		zap.Int("days", task.DurationDays))
	return task, nil
}

// ListTasks returns the session user's tasks in insertion order.
func (s *TaskService) ListTasks(ctx context.Context, session model.Session, now time.Time) ([]TaskView, error) {
	record, err := s.users.Get(ctx, session.Username)
	if err != nil {
		return nil, err
	}
	views := make([]TaskView, 0, len(record.Tasks))
	for _, task := range record.Tasks {
		views = append(views, ViewOf(task, now))
	}
	return views, nil
}

// MarkCompletedToday marks taskID done for the calendar date of now.
// A second call on the same date returns ErrDuplicateCompletion and writes nothing.
func (s *TaskService) MarkCompletedToday(ctx context.Context, session model.Session, taskID string, now time.Time) (model.UserRecord, error) {
	record, err := s.users.Update(ctx, session.Username, func(rec *model.UserRecord, _ bool) error {
		_, err := CompleteToday(rec, taskID, now)
		return err
	})
	if err != nil {
		return model.UserRecord{}, err
	}
	s.logger.Info("task completed",
		zap.String("username", session.Username),
		zap.String("task_id", taskID),
		zap.String("date", model.DateOf(now)))
	return record, nil
}
