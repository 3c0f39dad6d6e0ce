// ABOUTME: myhealth configuration: data location, active user, logging, and sync host.
// ABOUTME: Reads a JSON file, applies MYHEALTH_* environment overrides, and opens storage.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/myhealth/internal/logging"
	"github.com/harperreed/myhealth/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultUserID is the user every command acts as unless configured otherwise.
const DefaultUserID int64 = 1

// Environment variables that override the config file.
const (
	EnvDataDir   = "MYHEALTH_DATA_DIR"
	EnvUserID    = "MYHEALTH_USER_ID"
	EnvLogLevel  = "MYHEALTH_LOG_LEVEL"
	EnvCharmHost = "MYHEALTH_CHARM_HOST"
	EnvTimezone  = "MYHEALTH_TIMEZONE"
)

// Config stores myhealth configuration.
type Config struct {
	// DataDir is the directory holding myhealth.db.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/myhealth.
	DataDir string `json:"data_dir,omitempty"`

	// UserID owns weights, activities, bundles and settings written by this client.
	UserID int64 `json:"user_id,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// CharmHost overrides the Charm server used for backup sync.
	CharmHost string `json:"charm_host,omitempty"`

	// Timezone is an IANA name used to read and print dates. Defaults to local time.
	Timezone string `json:"timezone,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the database file inside the data directory.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), "myhealth.db")
}

// GetUserID returns the configured user, defaulting to DefaultUserID.
func (c *Config) GetUserID() int64 {
	if c.UserID <= 0 {
		return DefaultUserID
	}
	return c.UserID
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return logging.DefaultLevel
	}
	return c.LogLevel
}

// GetLocation resolves Timezone, defaulting to the local zone.
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store in the data directory.
func (c *Config) OpenStorage(logger *zap.Logger) (storage.Storage, error) {
	db, err := storage.Open(c.GetDBPath(), storage.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// ApplyEnv overrides fields from MYHEALTH_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvUserID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvUserID, v)
		}
		c.UserID = id
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvCharmHost); v != "" {
		c.CharmHost = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	return nil
}

// LoadEnv loads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "myhealth", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
