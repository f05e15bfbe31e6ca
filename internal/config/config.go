package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete azctx configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Azure   AzureConfig   `mapstructure:"azure"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StorageConfig controls where azctx keeps its contexts file
type StorageConfig struct {
	// Dir is the directory holding the contexts file (default: "~/.azctx").
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir"`
}

// AzureConfig controls how the Azure CLI is invoked
type AzureConfig struct {
	// Binary is an explicit path to the az executable. Empty means
	// discover it on PATH (and well-known install locations on Windows).
	Binary string `mapstructure:"binary"`
	// CommandTimeoutSeconds bounds each az invocation (default: 5)
	CommandTimeoutSeconds int `mapstructure:"command_timeout_seconds"`
	// ProbeTimeoutSeconds bounds the install probe; a cold az process can
	// take much longer to start than a warm one (default: 30)
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether file logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
}

// UIConfig controls terminal output behavior
type UIConfig struct {
	// Color enables styled terminal output (default: true). Honors NO_COLOR
	// at render time regardless of this setting.
	Color bool `mapstructure:"color"`
}

// CommandTimeout returns the per-command timeout as a time.Duration
func (a *AzureConfig) CommandTimeout() time.Duration {
	return time.Duration(a.CommandTimeoutSeconds) * time.Second
}

// ProbeTimeout returns the install probe timeout as a time.Duration
func (a *AzureConfig) ProbeTimeout() time.Duration {
	return time.Duration(a.ProbeTimeoutSeconds) * time.Second
}

// ResolveDir returns the resolved storage directory path.
// If Dir is empty, it returns ".azctx" under the user's home directory.
// If Dir starts with ~, it expands to the user's home directory.
func (s *StorageConfig) ResolveDir() string {
	path := s.Dir
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".azctx"
		}
		return filepath.Join(home, ".azctx")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir: "", // Empty means ~/.azctx
		},
		Azure: AzureConfig{
			Binary:                "", // Empty means discover on PATH
			CommandTimeoutSeconds: 5,
			ProbeTimeoutSeconds:   30,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Storage defaults
	viper.SetDefault("storage.dir", defaults.Storage.Dir)

	// Azure defaults
	viper.SetDefault("azure.binary", defaults.Azure.Binary)
	viper.SetDefault("azure.command_timeout_seconds", defaults.Azure.CommandTimeoutSeconds)
	viper.SetDefault("azure.probe_timeout_seconds", defaults.Azure.ProbeTimeoutSeconds)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// UI defaults
	viper.SetDefault("ui.color", defaults.UI.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "azctx")
	}
	// Fall back to ~/.config/azctx
	home, err := os.UserHomeDir()
	if err != nil {
		return ".azctx"
	}
	return filepath.Join(home, ".config", "azctx")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
