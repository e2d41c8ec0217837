package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"productivity-manager/internal/model"
	"productivity-manager/internal/repository"
)

// ProfileCooldownDays is the minimum number of whole days between profile saves.
const ProfileCooldownDays = 7

// ProfileInput holds the submitted profile form.
type ProfileInput struct {
	Name      string
	ClassName string
	Age       int
	Bio       string
}

// ProfileState tells apart a missing profile from a saved one that is locked or editable.
type ProfileState int

const (
	ProfileAbsent ProfileState = iota
	ProfileLocked
	ProfileEditable
)

func (s ProfileState) String() string {
	switch s {
	case ProfileAbsent:
		return "absent"
	case ProfileLocked:
		return "locked"
	case ProfileEditable:
		return "editable"
	default:
		return "unknown"
	}
}

// EditWindow is the result of a cooldown check.
type EditWindow struct {
	Allowed       bool
	DaysRemaining int
}

// CanEditProfile applies the cooldown to the last save time of record.
func CanEditProfile(record model.UserRecord, now time.Time) EditWindow {
	if record.ProfileLastSaved == nil {
		return EditWindow{Allowed: true}
	}
	elapsed := int(math.Floor(now.Sub(*record.ProfileLastSaved).Hours() / 24))
	remaining := ProfileCooldownDays - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return EditWindow{Allowed: elapsed >= ProfileCooldownDays, DaysRemaining: remaining}
}

// StateOf classifies the profile of record at now.
func StateOf(record model.UserRecord, now time.Time) ProfileState {
	if !record.HasProfile() {
		return ProfileAbsent
	}
	if CanEditProfile(record, now).Allowed {
		return ProfileEditable
	}
	return ProfileLocked
}

// ApplyProfile validates input and stores it on record, stamping the save time.
func ApplyProfile(record *model.UserRecord, input ProfileInput, now time.Time) error {
	profile := model.Profile{
		Name:      strings.TrimSpace(input.Name),
		ClassName: strings.TrimSpace(input.ClassName),
		Age:       input.Age,
		Bio:       strings.TrimSpace(input.Bio),
	}
	switch {
	case profile.Name == "":
		return invalid("name", "is required")
	case profile.ClassName == "":
		return invalid("class", "is required")
	case profile.Age <= 0:
		return invalid("age", "must be a positive number")
	}

	if window := CanEditProfile(*record, now); !window.Allowed {
		return &CooldownError{DaysRemaining: window.DaysRemaining}
	}

	saved := now
	record.Profile = &profile
	record.ProfileLastSaved = &saved
	return nil
}

// ProfileSummary renders the one-line profile shown on the dashboard.
func ProfileSummary(record model.UserRecord) string {
	if record.Profile == nil {
		return "Profile not set"
	}
	return fmt.Sprintf("%s · Age %d · %s", record.Profile.ClassName, record.Profile.Age, record.Profile.Bio)
}

// ProfileService persists profile edits under the cooldown gate.
type ProfileService struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

func NewProfileService(users *repository.UserRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger.Named("profile")}
}

// Window reports whether the session's user may edit the profile now.
func (s *ProfileService) Window(ctx context.Context, session model.Session, now time.Time) (EditWindow, error) {
	record, err := s.users.Get(ctx, session.Username)
	if err != nil {
		return EditWindow{}, err
	}
	return CanEditProfile(record, now), nil
}

// Save validates and stores the profile. It fails with a *CooldownError inside the cooldown.
func (s *ProfileService) Save(ctx context.Context, session model.Session, input ProfileInput, now time.Time) (model.UserRecord, error) {
	record, err := s.users.Update(ctx, session.Username, func(rec *model.UserRecord, _ bool) error {
		return ApplyProfile(rec, input, now)
	})
	if err != nil {
		s.logger.Debug("profile rejected", zap.String("username", session.Username), zap.Error(err))
		return model.UserRecord{}, err
	}
	s.logger.Info("profile saved", zap.String("username", session.Username))
	return record, nil
}

// Skip leaves the record untouched; the profile stays absent until the first save.
func (s *ProfileService) Skip(ctx context.Context, session model.Session) (model.UserRecord, error) {
	return s.users.Get(ctx, session.Username)
}
