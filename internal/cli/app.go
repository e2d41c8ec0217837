package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"productivity-manager/internal/bot"
	"productivity-manager/internal/config"
	"productivity-manager/internal/model"
	"productivity-manager/internal/repository"
	"productivity-manager/internal/service"
)

// App bundles the services behind the commands.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Auth      *service.AuthService
	Profiles  *service.ProfileService
	Tasks     *service.TaskService
	Reminders *service.ReminderService
	Now       func() time.Time

	db *gorm.DB
}

// NewApp opens the store and wires the services. out receives reminder messages.
func NewApp(cfg config.Config, logger *zap.Logger, out io.Writer) (*App, error) {
	policy, err := service.ParseMatchPolicy(cfg.MatchPolicy)
	if err != nil {
		return nil, err
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	users := repository.NewUserRepository(db)

	notifiers := bot.Fanout{bot.NewWriterNotifier(out), bot.NewLogNotifier(logger)}
	if cfg.TelegramEnabled() {
		tg, err := bot.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Warn("telegram disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	evaluator := service.Evaluator{Policy: policy, Window: cfg.ReminderInterval}
	return &App{
		Config:    cfg,
		Logger:    logger,
		Auth:      service.NewAuthService(users, logger),
		Profiles:  service.NewProfileService(users, logger),
		Tasks:     service.NewTaskService(users, logger),
		Reminders: service.NewReminderService(users, evaluator, notifiers, logger),
		Now:       time.Now,
		db:        db,
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *App) session(ctx context.Context) (model.Session, error) {
	session, err := a.Auth.Current(ctx)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: run `spm login` first", err)
	}
	return session, nil
}

// afterAction runs a reminder evaluation the way every user action does.
func (a *App) afterAction(ctx context.Context) {
	if _, err := a.Reminders.Check(ctx, a.Now()); err != nil {
		a.Logger.Warn("reminder check", zap.Error(err))
	}
}
