package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zone = time.FixedZone("test", 2*60*60)

func TestTaskElapsedAndExpired(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, zone)
	task := Task{DurationDays: 3, CreatedAt: created}

	tests := []struct {
		name    string
		now     time.Time
		elapsed int
		expired bool
	}{
		{"same day", created.Add(9 * time.Hour), 0, false},
		{"just under one day", created.Add(24*time.Hour - time.Second), 0, false},
		{"day two", created.Add(30 * time.Hour), 1, false},
		{"last active day", created.Add(71 * time.Hour), 2, false},
		{"window over", created.Add(72 * time.Hour), 3, true},
		{"long after", created.Add(240 * time.Hour), 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.elapsed, task.ElapsedDays(tt.now))
			assert.Equal(t, tt.expired, task.Expired(tt.now))
		})
	}
}

func TestTaskProgressAndCompleted(t *testing.T) {
	task := Task{DurationDays: 4, CompletedDates: []string{"2026-03-01", "2026-03-02"}}
	assert.InDelta(t, 0.5, task.Progress(), 1e-9)
	assert.False(t, task.Completed())

	task.DurationDays = 2
	assert.True(t, task.Completed())

	task.DurationDays = 1
	assert.True(t, task.Completed())
	assert.InDelta(t, 2.0, task.Progress(), 1e-9)
}

func TestTaskCompletedAndRemindedOn(t *testing.T) {
	day := "2026-03-02"
	task := Task{CompletedDates: []string{"2026-03-01"}}
	assert.True(t, task.CompletedOn("2026-03-01"))
	assert.False(t, task.CompletedOn(day))
	assert.False(t, task.RemindedOn(day))

	task.LastRemindedDate = &day
	assert.True(t, task.RemindedOn(day))
	assert.False(t, task.RemindedOn("2026-03-03"))
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:45")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 45, m)

	for _, bad := range []string{"", "7:45", "24:00", "12:60", "12-30", "ab:cd", "12:305", "+1:30", "-0:00", "+9:+5", "1 :30", "01:3x"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestScheduledOn(t *testing.T) {
	task := Task{ScheduledTime: "18:30"}
	now := time.Date(2026, 3, 5, 1, 2, 3, 0, zone)
	at, err := task.ScheduledOn(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 18, 30, 0, 0, zone), at)
}

func TestUserRecordNormalizeAndFind(t *testing.T) {
	rec := UserRecord{Tasks: []Task{{ID: "a"}, {ID: "b"}}}
	rec.Normalize()
	assert.NotNil(t, rec.Tasks[0].CompletedDates)
	assert.Equal(t, 1, rec.FindTask("b"))
	assert.Equal(t, -1, rec.FindTask("c"))

	var empty UserRecord
	empty.Normalize()
	assert.NotNil(t, empty.Tasks)
	assert.False(t, empty.HasProfile())
}
