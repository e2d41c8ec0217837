package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"productivity-manager/internal/model"
	"productivity-manager/internal/repository"
)

var zone = time.FixedZone("test", 3*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, zone)
}

func newTestUsers(t *testing.T) *repository.UserRepository {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "spm.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewUserRepository(db)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]Reminder
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, _ model.Session, reminders []Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, reminders)
	return n.err
}

func sequentialIDs() func() string {
	var i int
	return func() string {
		i++
		return "t_" + string(rune('a'+i-1))
	}
}

var nop = zap.NewNop()
