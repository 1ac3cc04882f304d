package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/gitquest/internal/store"
)

// Config holds runtime settings. Values come from GITQUEST_ environment
// variables, optionally seeded from a .env file; command-line flags
// override them afterwards.
type Config struct {
	// DataDir holds the save files and the event log.
	DataDir string

	// QuestionsPath overrides the embedded question bank when set.
	QuestionsPath string

	// DBPath is the event log database. Empty means DataDir/gitquest.db.
	DBPath string

	// EventLog enables the SQLite event log.
	EventLog bool

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Seed fixes question selection when non-zero.
	Seed int

	// NoColor disables styled output.
	NoColor bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set
// in the environment win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}

	dataDir := envStr("GITQUEST_DATA_DIR", "")
	if dataDir == "" {
		d, err := store.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = d
	}

	cfg := &Config{
		DataDir:       dataDir,
		QuestionsPath: envStr("GITQUEST_QUESTIONS", ""),
		DBPath:        envStr("GITQUEST_DB", ""),
		EventLog:      envBool("GITQUEST_EVENT_LOG", true),
		LogLevel:      envStr("GITQUEST_LOG_LEVEL", "warn"),
		Seed:          envInt("GITQUEST_SEED", 0),
		NoColor:       envBool("GITQUEST_NO_COLOR", os.Getenv("NO_COLOR") != ""),
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("GITQUEST_DATA_DIR must not be empty")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Seed < 0 {
		return fmt.Errorf("GITQUEST_SEED must not be negative, got %d", c.Seed)
	}
	return nil
}

// ResolvedDBPath returns DBPath, defaulting to a file inside DataDir, and
// makes sure its directory exists.
func (c *Config) ResolvedDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, os.MkdirAll(filepath.Dir(c.DBPath), 0o755)
	}
	return store.DefaultDBPath(c.DataDir)
}

// SlogLevel returns the configured log level, warn when invalid.
func (c *Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("GITQUEST_LOG_LEVEL must be debug, info, warn or error, got %q", s)
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
