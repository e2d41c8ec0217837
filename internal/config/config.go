package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "SPM_"

// Config keeps runtime settings for the reminder utility.
type Config struct {
	DatabaseURL       string        `koanf:"database_url"`
	ReminderInterval  time.Duration `koanf:"reminder_interval"`
	InitialCheckDelay time.Duration `koanf:"initial_check_delay"`
	MatchPolicy       string        `koanf:"match_policy"`
	LogLevel          string        `koanf:"log_level"`
	LogFormat         string        `koanf:"log_format"`
	TelegramToken     string        `koanf:"telegram_token"`
	TelegramChatID    int64         `koanf:"telegram_chat_id"`
}

// Load reads the optional YAML file at path, then SPM_* environment variables,
// then fills defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// SPM_DATABASE_URL -> database_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "spm.db"
	}
	if cfg.ReminderInterval == 0 {
		cfg.ReminderInterval = 30 * time.Second
	}
	if cfg.InitialCheckDelay == 0 {
		cfg.InitialCheckDelay = time.Second
	}
	if cfg.MatchPolicy == "" {
		cfg.MatchPolicy = "exact"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
	cfg.TelegramToken = strings.TrimSpace(cfg.TelegramToken)
}

// Validate checks value ranges and combinations.
func (c Config) Validate() error {
	if c.ReminderInterval < time.Second {
		return fmt.Errorf("reminder_interval must be at least 1s, got %s", c.ReminderInterval)
	}
	if c.InitialCheckDelay < 0 {
		return fmt.Errorf("initial_check_delay must not be negative")
	}
	switch c.MatchPolicy {
	case "exact", "window":
	default:
		return fmt.Errorf("match_policy must be exact or window, got %q", c.MatchPolicy)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("telegram_chat_id is required when telegram_token is set")
	}
	return nil
}

// TelegramEnabled reports whether reminders should also go to Telegram.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
