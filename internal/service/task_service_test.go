package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity-manager/internal/model"
)

func newTestTaskService(t *testing.T) (*TaskService, model.Session) {
	t.Helper()
	svc := NewTaskService(newTestUsers(t), nop)
	svc.newID = sequentialIDs()
	return svc, model.Session{Username: "alice"}
}

func TestNewTaskValidation(t *testing.T) {
	tests := []struct {
		name  string
		input TaskInput
		field string
	}{
		{"missing name", TaskInput{ScheduledTime: "18:00", DurationDays: 3}, "name"},
		{"missing time", TaskInput{Name: "Read", DurationDays: 3}, "time"},
		{"malformed time", TaskInput{Name: "Read", ScheduledTime: "6pm", DurationDays: 3}, "time"},
		{"out of range time", TaskInput{Name: "Read", ScheduledTime: "25:00", DurationDays: 3}, "time"},
		{"signed hour", TaskInput{Name: "Read", ScheduledTime: "+1:30", DurationDays: 3}, "time"},
		{"negative zero hour", TaskInput{Name: "Read", ScheduledTime: "-0:00", DurationDays: 3}, "time"},
		{"signed hour and minute", TaskInput{Name: "Read", ScheduledTime: "+9:+5", DurationDays: 3}, "time"},
		{"zero days", TaskInput{Name: "Read", ScheduledTime: "18:00"}, "days"},
		{"negative days", TaskInput{Name: "Read", ScheduledTime: "18:00", DurationDays: -1}, "days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.input, at(1, 9, 0), "t_x")
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateTaskThenList(t *testing.T) {
	svc, session := newTestTaskService(t)
	ctx := context.Background()
	now := at(1, 9, 0)

	task, err := svc.CreateTask(ctx, session, TaskInput{Name: " Read ", ScheduledTime: "18:00", DurationDays: 3}, now)
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, session, TaskInput{Name: "Run", ScheduledTime: "07:00", DurationDays: 5}, now)
	require.NoError(t, err)

	views, err := svc.ListTasks(ctx, session, now)
	require.NoError(t, err)
	require.Len(t, views, 2)

	got := views[0]
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "Read", got.Name)
	assert.Equal(t, "18:00", got.ScheduledTime)
	assert.Equal(t, 3, got.DurationDays)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.Empty(t, got.CompletedDates)
	assert.Nil(t, got.LastRemindedDate)
	assert.Equal(t, "Progress: 0/3 days", got.ProgressLabel())
	assert.Equal(t, "Run", views[1].Name)
}

func TestCreateTaskInvalidWritesNothing(t *testing.T) {
	svc, session := newTestTaskService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, session, TaskInput{Name: "Read", ScheduledTime: "18:00"}, at(1, 9, 0))
	require.ErrorIs(t, err, ErrValidation)

	views, err := svc.ListTasks(ctx, session, at(1, 9, 0))
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDefaultTaskIDs(t *testing.T) {
	a, b := newTaskID(), newTaskID()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^t_[0-9a-f-]{36}$`, a)
}

func TestMarkCompletedTodayIsIdempotent(t *testing.T) {
	svc, session := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, session, TaskInput{Name: "Read", ScheduledTime: "18:00", DurationDays: 2}, at(1, 9, 0))
	require.NoError(t, err)

	record, err := svc.MarkCompletedToday(ctx, session, task.ID, at(1, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-01"}, record.Tasks[0].CompletedDates)

	_, err = svc.MarkCompletedToday(ctx, session, task.ID, at(1, 23, 59))
	require.ErrorIs(t, err, ErrDuplicateCompletion)

	views, err := svc.ListTasks(ctx, session, at(1, 23, 59))
	require.NoError(t, err)
	assert.Len(t, views[0].CompletedDates, 1)
	assert.False(t, views[0].Completed)

	_, err = svc.MarkCompletedToday(ctx, session, task.ID, at(2, 8, 0))
	require.NoError(t, err)
	views, err = svc.ListTasks(ctx, session, at(2, 8, 0))
	require.NoError(t, err)
	assert.True(t, views[0].Completed)
	assert.InDelta(t, 1.0, views[0].Progress, 1e-9)
}

func TestMarkCompletedTodayNotFound(t *testing.T) {
	svc, session := newTestTaskService(t)
	_, err := svc.MarkCompletedToday(context.Background(), session, "t_missing", at(1, 9, 0))
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestViewOfCompletedAndExpired(t *testing.T) {
	task := model.Task{
		DurationDays:   2,
		CreatedAt:      at(1, 9, 0),
		CompletedDates: []string{"2026-03-01", "2026-03-02", "2026-03-03"},
	}
	view := ViewOf(task, at(5, 9, 0))
	assert.True(t, view.Completed)
	assert.True(t, view.Expired)
	assert.Equal(t, 3, view.CompletedCount)
	assert.InDelta(t, 1.5, view.Progress, 1e-9)
}
