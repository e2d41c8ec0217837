package model

import (
	"encoding/json"
	"math"
	"time"
)

// Profile is the optional personal information attached to a user record.
type Profile struct {
	Name      string `json:"name"`
	ClassName string `json:"className"`
	Age       int    `json:"age"`
	Bio       string `json:"bio"`
}

// UnmarshalJSON accepts a fractional age from older documents and floors it.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type profileAlias Profile
	var raw struct {
		profileAlias
		Age float64 `json:"age"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Profile(raw.profileAlias)
	p.Age = int(math.Floor(raw.Age))
	return nil
}

// UserRecord is everything persisted for one username.
type UserRecord struct {
	Profile          *Profile   `json:"profile"`
	ProfileLastSaved *time.Time `json:"profileLastSaved"`
	Tasks            []Task     `json:"tasks"`
}

// NewUserRecord returns the record created on first login.
func NewUserRecord() UserRecord {
	return UserRecord{Tasks: []Task{}}
}

func (r UserRecord) HasProfile() bool {
	return r.Profile != nil
}

// FindTask returns the index of the task with the given id, or -1.
func (r UserRecord) FindTask(id string) int {
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize replaces nil collections left by older documents with empty ones.
func (r *UserRecord) Normalize() {
	if r.Tasks == nil {
		r.Tasks = []Task{}
	}
	for i := range r.Tasks {
		if r.Tasks[i].CompletedDates == nil {
			r.Tasks[i].CompletedDates = []string{}
		}
	}
}

// Session identifies the logged in user from login to logout.
type Session struct {
	Username string `json:"username"`
}
