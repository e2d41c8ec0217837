package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productivity-manager/internal/model"
)

// KVRepository stores JSON values by string key.
type KVRepository struct {
	db *gorm.DB
}

func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) withDB(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get decodes the value stored under key into dst. It returns false if the key is absent.
func (r *KVRepository) Get(ctx context.Context, key string, dst any) (bool, error) {
	var entry model.Entry
	err := r.db.WithContext(ctx).Where(&model.Entry{Key: key}).First(&entry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(entry.Value), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set overwrites the value stored under key.
func (r *KVRepository) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	entry := model.Entry{Key: key, Value: string(raw)}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Delete(&model.Entry{Key: key}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
