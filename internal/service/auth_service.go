package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"productivity-manager/internal/model"
	"productivity-manager/internal/repository"
)

// AuthService handles login and logout. Passwords are required but not checked.
type AuthService struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

func NewAuthService(users *repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, logger: logger.Named("auth")}
}

// Login starts a session for username, creating its record on first login.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.Session{}, invalid("username", "is required")
	}
	if password == "" {
		return model.Session{}, invalid("password", "is required")
	}

	created, err := s.users.Ensure(ctx, username)
	if err != nil {
		return model.Session{}, err
	}
	session := model.Session{Username: username}
	if err := s.users.SaveSession(ctx, session); err != nil {
		return model.Session{}, err
	}
	s.logger.Info("login", zap.String("username", username), zap.Bool("new_user", created))
	return session, nil
}

// Current restores the session saved by the last login.
func (s *AuthService) Current(ctx context.Context) (model.Session, error) {
	return s.users.LoadSession(ctx)
}

// Logout ends the active session. The user's record is kept.
func (s *AuthService) Logout(ctx context.Context, session model.Session) error {
	if err := s.users.ClearSession(ctx); err != nil {
		return err
	}
	s.logger.Info("logout", zap.String("username", session.Username))
	return nil
}

// Record returns the stored record for the session's user.
func (s *AuthService) Record(ctx context.Context, session model.Session) (model.UserRecord, error) {
	return s.users.Get(ctx, session.Username)
}

// DisplayName is the profile name if one is saved, otherwise the username.
func DisplayName(session model.Session, record model.UserRecord) string {
	if record.Profile != nil && record.Profile.Name != "" {
		return record.Profile.Name
	}
	return session.Username
}
