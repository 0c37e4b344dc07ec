// Package config manages gitlet configuration and the .gitlet directory structure.
// It handles loading, saving, and initializing the repository configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/pelletier/go-toml/v2"
)

const (
	GitletDir    = ".gitlet"
	ConfigFile   = "config"
	DatabaseFile = "state.db"
	ObjectsDir   = "objects"

	DefaultBranchName      = "master"
	DefaultTransferWorkers = 4
	DefaultLogLevel        = "warn"
)

// Config represents the gitlet configuration
type Config struct {
	DefaultBranch   string `toml:"default_branch"`
	TransferWorkers int    `toml:"transfer_workers"`
	LogLevel        string `toml:"log_level"`
	path            string // path to .gitlet directory
}

// FindRoot finds the .gitlet directory by walking up from start
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		gitletPath := filepath.Join(dir, GitletDir)
		if info, err := os.Stat(gitletPath); err == nil && info.IsDir() {
			return gitletPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", models.ErrNotInitialized
		}
		dir = parent
	}
}

// Load loads the configuration of the repository containing the current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFrom(cwd)
}

// LoadFrom loads the configuration of the repository containing dir
func LoadFrom(dir string) (*Config, error) {
	gitletPath, err := FindRoot(dir)
	if err != nil {
		return nil, err
	}
	return Open(gitletPath)
}

// Open reads the configuration from a known .gitlet directory
func Open(gitletPath string) (*Config, error) {
	configPath := filepath.Join(gitletPath, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.path = gitletPath
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DefaultBranch == "" {
		c.DefaultBranch = DefaultBranchName
	}
	if c.TransferWorkers <= 0 {
		c.TransferWorkers = DefaultTransferWorkers
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configPath := filepath.Join(c.path, ConfigFile)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// GitletPath returns the path to the .gitlet directory
func (c *Config) GitletPath() string {
	return c.path
}

// WorkTreePath returns the directory holding the tracked files
func (c *Config) WorkTreePath() string {
	return filepath.Dir(c.path)
}

// StatePath returns the path to the bbolt state database
func (c *Config) StatePath() string {
	return filepath.Join(c.path, DatabaseFile)
}

// ObjectsPath returns the path to the object store root
func (c *Config) ObjectsPath() string {
	return filepath.Join(c.path, ObjectsDir)
}

// SlogLevel maps the configured log level onto slog
func (c *Config) SlogLevel() slog.Level {
	return ParseLevel(c.LogLevel)
}

// ParseLevel maps a level name onto slog. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Initialize creates a new .gitlet directory under dir with the default configuration
func Initialize(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	gitletPath := filepath.Join(abs, GitletDir)

	// Check if already initialized
	if _, err := os.Stat(gitletPath); err == nil {
		return nil, models.ErrAlreadyInitialized
	}

	if err := os.MkdirAll(gitletPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .gitlet directory: %w", err)
	}

	cfg := &Config{path: gitletPath}
	cfg.applyDefaults()

	if err := os.MkdirAll(cfg.ObjectsPath(), 0755); err != nil {
		os.RemoveAll(gitletPath)
		return nil, fmt.Errorf("failed to create objects directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		// Cleanup on failure
		os.RemoveAll(gitletPath)
		return nil, err
	}

	return cfg, nil
}
