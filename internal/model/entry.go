package model

import "time"

// Entry is one row of the local key-value store. Value holds JSON.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kv_entries"
}
