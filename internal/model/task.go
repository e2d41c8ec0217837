package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	// DateLayout is the calendar-date form used for completion and reminder stamps.
	DateLayout = "2006-01-02"
	// ClockLayout is the wall-clock form of a task's scheduled time.
	ClockLayout = "15:04"
)

// Task represents a recurring daily reminder owned by one user record.
type Task struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ScheduledTime    string    `json:"time"`
	DurationDays     int       `json:"days"`
	CreatedAt        time.Time `json:"createdAt"`
	CompletedDates   []string  `json:"completedDates"`
	LastRemindedDate *string   `json:"lastRemindedDate"`
}

// DateOf returns the local calendar date of t as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ElapsedDays is the number of whole days between creation and now.
func (t Task) ElapsedDays(now time.Time) int {
	return int(math.Floor(now.Sub(t.CreatedAt).Hours() / 24))
}

// Expired reports whether the reminder window has run out.
func (t Task) Expired(now time.Time) bool {
	return t.ElapsedDays(now) >= t.DurationDays
}

func (t Task) CompletedCount() int {
	return len(t.CompletedDates)
}

// Completed reports whether the task was done on at least DurationDays distinct dates.
func (t Task) Completed() bool {
	return t.CompletedCount() >= t.DurationDays
}

// Progress is the share of required days already completed. It may exceed 1.
func (t Task) Progress() float64 {
	if t.DurationDays <= 0 {
		return 0
	}
	return float64(t.CompletedCount()) / float64(t.DurationDays)
}

func (t Task) CompletedOn(date string) bool {
	for _, d := range t.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

func (t Task) RemindedOn(date string) bool {
	return t.LastRemindedDate != nil && *t.LastRemindedDate == date
}

// ParseClock validates a strict HH:MM 24h string and returns its hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(s[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(s[3:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ScheduledOn returns the instant the task is due on the calendar day of now.
func (t Task) ScheduledOn(now time.Time) (time.Time, error) {
	hour, minute, err := ParseClock(t.ScheduledTime)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := now.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, now.Location()), nil
}
