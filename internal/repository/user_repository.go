package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"productivity-manager/internal/model"
)

const (
	CurrentUserKey = "spm_current_user"
	UsersKey       = "spm_users"
)

// ErrNoSession is returned when no user is logged in.
var ErrNoSession = errors.New("no active session")

// UserRepository keeps user records and the active session in the key-value store.
// All user records live in one document keyed by username.
type UserRepository struct {
	db *gorm.DB
	kv *KVRepository
	mu sync.Mutex
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, kv: NewKVRepository(db)}
}

func (r *UserRepository) loadUsers(ctx context.Context, kv *KVRepository) (map[string]model.UserRecord, error) {
	users := map[string]model.UserRecord{}
	if _, err := kv.Get(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = map[string]model.UserRecord{}
	}
	return users, nil
}

// Ensure creates an empty record for username unless one already exists.
func (r *UserRepository) Ensure(ctx context.Context, username string) (created bool, err error) {
	_, err = r.Update(ctx, username, func(_ *model.UserRecord, exists bool) error {
		created = !exists
		if exists {
			return ErrNoChange
		}
		return nil
	})
	return created, err
}

// Get returns the stored record for username, or a fresh default record.
func (r *UserRepository) Get(ctx context.Context, username string) (model.UserRecord, error) {
	users, err := r.loadUsers(ctx, r.kv)
	if err != nil {
		return model.UserRecord{}, fmt.Errorf("get user %s: %w", username, err)
	}
	record, ok := users[username]
	if !ok {
		return model.NewUserRecord(), nil
	}
	record.Normalize()
	return record, nil
}

// Put overwrites the stored record for username.
func (r *UserRepository) Put(ctx context.Context, username string, record model.UserRecord) error {
	_, err := r.Update(ctx, username, func(rec *model.UserRecord, _ bool) error {
		*rec = record
		return nil
	})
	return err
}

// ErrNoChange can be returned by an Update callback to end the cycle without writing.
var ErrNoChange = errors.New("no change")

// Update runs a read-modify-write cycle on one record. The cycle is serialized
// within the process and runs in a single transaction. If fn returns an error
// nothing is written and the error is returned, except ErrNoChange which is
// swallowed.
func (r *UserRepository) Update(ctx context.Context, username string, fn func(rec *model.UserRecord, exists bool) error) (model.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result model.UserRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		kv := r.kv.withDB(tx)
		users, err := r.loadUsers(ctx, kv)
		if err != nil {
			return err
		}
		record, exists := users[username]
		if !exists {
			record = model.NewUserRecord()
		}
		record.Normalize()
		if err := fn(&record, exists); err != nil {
			result = record
			return err
		}
		record.Normalize()
		users[username] = record
		result = record
		return kv.Set(ctx, UsersKey, users)
	})
	if errors.Is(err, ErrNoChange) {
		return result, nil
	}
	return result, err
}

// SaveSession marks username as the active user.
func (r *UserRepository) SaveSession(ctx context.Context, session model.Session) error {
	return r.kv.Set(ctx, CurrentUserKey, session)
}

// LoadSession returns the active session or ErrNoSession.
func (r *UserRepository) LoadSession(ctx context.Context) (model.Session, error) {
	var session model.Session
	ok, err := r.kv.Get(ctx, CurrentUserKey, &session)
	if err != nil {
		return model.Session{}, err
	}
	if !ok || session.Username == "" {
		return model.Session{}, ErrNoSession
	}
	return session, nil
}

// ClearSession removes the active session marker. User records are kept.
func (r *UserRepository) ClearSession(ctx context.Context) error {
	return r.kv.Delete(ctx, CurrentUserKey)
}
