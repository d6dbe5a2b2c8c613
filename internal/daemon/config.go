// Package daemon wires configuration, storage, background jobs and the HTTP
// server into the long-running calma process.
package daemon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/calma-app/calma/internal/app/chat"
	"github.com/calma-app/calma/internal/app/checkout"
	"github.com/calma-app/calma/internal/app/wellness"
)

// ─── Config ─────────────────────────────────────────────────────────────────

// Config is the daemon configuration, read from $CALMA_HOME/config.toml and
// overridden by CALMA_* environment variables.
type Config struct {
	API      APIConfig      `toml:"api" envPrefix:"API_"`
	Session  SessionConfig  `toml:"session" envPrefix:"SESSION_"`
	Chat     ChatConfig     `toml:"chat" envPrefix:"CHAT_"`
	Checkout CheckoutConfig `toml:"checkout" envPrefix:"CHECKOUT_"`
	Reminder ReminderConfig `toml:"reminder" envPrefix:"REMINDER_"`
	Metrics  MetricsConfig  `toml:"metrics" envPrefix:"METRICS_"`
	Storage  StorageConfig  `toml:"storage" envPrefix:"STORAGE_"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host           string `toml:"host" env:"HOST"`
	Port           int    `toml:"port" env:"PORT"`
	RequestTimeout string `toml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// SessionConfig controls per-client sessions.
type SessionConfig struct {
	SeedDemo        bool   `toml:"seed_demo" env:"SEED_DEMO"`
	Onboarding      bool   `toml:"onboarding" env:"ONBOARDING"`
	PromptThreshold int    `toml:"prompt_threshold" env:"PROMPT_THRESHOLD"`
	PromptDelay     string `toml:"prompt_delay" env:"PROMPT_DELAY"`
	HistorySize     int    `toml:"history_size" env:"HISTORY_SIZE"`
	MaxSessions     int    `toml:"max_sessions" env:"MAX_SESSIONS"`
	IdleTTL         string `toml:"idle_ttl" env:"IDLE_TTL"`
}

// ChatConfig controls the assistant's typing delay.
type ChatConfig struct {
	MinDelay string `toml:"min_delay" env:"MIN_DELAY"`
	MaxDelay string `toml:"max_delay" env:"MAX_DELAY"`
}

// CheckoutConfig controls the simulated payment gateway.
type CheckoutConfig struct {
	ProcessingDelay string `toml:"processing_delay" env:"PROCESSING_DELAY"`
	PlatformFeePct  int    `toml:"platform_fee_pct" env:"PLATFORM_FEE_PCT"`
}

// ReminderConfig controls the daily check-in reminder.
type ReminderConfig struct {
	Enabled  bool   `toml:"enabled" env:"ENABLED"`
	At       string `toml:"at" env:"AT"`
	Timezone string `toml:"timezone" env:"TIMEZONE"`
}

// MetricsConfig controls the Prometheus endpoint and request tracing.
type MetricsConfig struct {
	Enabled  bool `toml:"enabled" env:"ENABLED"`
	MaxSpans int  `toml:"max_spans" env:"MAX_SPANS"`
}

// StorageConfig controls the settings database.
type StorageConfig struct {
	Enabled bool   `toml:"enabled" env:"ENABLED"`
	DataDir string `toml:"data_dir" env:"DATA_DIR"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			RequestTimeout: "30s",
		},
		Session: SessionConfig{
			SeedDemo:        true,
			Onboarding:      true,
			PromptThreshold: 3,
			PromptDelay:     "1s",
			HistorySize:     wellness.DefaultHistorySize,
			MaxSessions:     1000,
			IdleTTL:         "24h",
		},
		Chat: ChatConfig{
			MinDelay: "1s",
			MaxDelay: "2s",
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: "2s",
			PlatformFeePct:  checkout.DefaultPlatformFeePct,
		},
		Reminder: ReminderConfig{
			Enabled:  true,
			At:       "20:00",
			Timezone: "America/Sao_Paulo",
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			MaxSpans: 1000,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
	}
}

// Home returns the calma home directory: $CALMA_HOME or ~/.calma.
func Home() string {
	if h := os.Getenv("CALMA_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".calma"
	}
	return filepath.Join(home, ".calma")
}

// Load reads the configuration. path may be empty, in which case
// config.toml under Home() is used if it exists. A .env file in the working
// directory is loaded before environment overrides are applied.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(Home(), "config.toml")
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "CALMA_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = Home()
	}
	return cfg, nil
}

// ─── Derived settings ───────────────────────────────────────────────────────

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// SessionSettings converts the session section for the wellness engine.
func (c Config) SessionSettings() wellness.SessionConfig {
	return wellness.SessionConfig{
		SeedDemo:        c.Session.SeedDemo,
		Onboarding:      c.Session.Onboarding,
		PromptThreshold: c.Session.PromptThreshold,
		PromptDelay:     parseDuration(c.Session.PromptDelay, time.Second),
		HistorySize:     c.Session.HistorySize,
	}
}

// ChatSettings converts the chat section.
func (c Config) ChatSettings() chat.Config {
	return chat.Config{
		MinDelay: parseDuration(c.Chat.MinDelay, time.Second),
		MaxDelay: parseDuration(c.Chat.MaxDelay, 2*time.Second),
	}
}

// CheckoutSettings converts the checkout section.
func (c Config) CheckoutSettings() checkout.Config {
	pct := c.Checkout.PlatformFeePct
	if pct < 0 || pct > 100 {
		pct = checkout.DefaultPlatformFeePct
	}
	return checkout.Config{
		ProcessingDelay: parseDuration(c.Checkout.ProcessingDelay, 2*time.Second),
		PlatformFeePct:  pct,
	}
}

// Location resolves the reminder timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Reminder.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Reminder.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// parseDuration parses s, returning def when s is empty or malformed.
// Negative durations are treated as zero.
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	if d < 0 {
		return 0
	}
	return d
}
