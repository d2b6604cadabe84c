// Package config loads Lifeledger settings from config.yaml and
// LIFELEDGER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	appName        = "lifeledger"
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// EnvPrefix prefixes every environment override, e.g. LIFELEDGER_BACKEND.
	EnvPrefix = "LIFELEDGER"

	// Config keys.
	KeyBackend            = "backend"
	KeyDataDir            = "data_dir"
	KeyLogLevel           = "log_level"
	KeyLogJSON            = "log_json"
	KeyFinanceLogCap      = "finance_log_cap"
	KeyRecentSearchCap    = "recent_search_cap"
	KeyRecentTransactions = "recent_transactions"
	KeyCurrency           = "currency"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Lifeledger configuration
# Every key can be overridden with a LIFELEDGER_<KEY> environment variable.

# Storage backend: badger or sqlite
backend: badger

# Data directory (defaults to $XDG_DATA_HOME/lifeledger)
# data_dir:

# Log level: debug, info, warn, error
log_level: warn

# Number of finance log entries kept
finance_log_cap: 1000
`

// Config holds the resolved configuration.
type Config struct {
	Backend            string `mapstructure:"backend"`
	DataDir            string `mapstructure:"data_dir"`
	LogLevel           string `mapstructure:"log_level"`
	LogJSON            bool   `mapstructure:"log_json"`
	FinanceLogCap      int    `mapstructure:"finance_log_cap"`
	RecentSearchCap    int    `mapstructure:"recent_search_cap"`
	RecentTransactions int    `mapstructure:"recent_transactions"`
	Currency           string `mapstructure:"currency"`

	// File is the config file that was read, or "" when none exists.
	File string `mapstructure:"-"`
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/lifeledger.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// DefaultDataDir returns $XDG_DATA_HOME/lifeledger.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, BackendBadger)
	v.SetDefault(KeyDataDir, DefaultDataDir())
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyFinanceLogCap, 1000)
	v.SetDefault(KeyRecentSearchCap, 10)
	v.SetDefault(KeyRecentTransactions, 10)
	v.SetDefault(KeyCurrency, "USD")
}

// Load reads config.yaml from configDir and applies environment overrides.
// A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at open time.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q (want %s or %s)", c.Backend, BackendBadger, BackendSQLite)
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.FinanceLogCap <= 0 {
		return fmt.Errorf("config: %s must be positive", KeyFinanceLogCap)
	}
	return nil
}

// DBPath returns the database location for the configured backend.
func (c *Config) DBPath() string {
	if c.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, appName+".db")
	}
	return filepath.Join(c.DataDir, "db")
}

// WriteDefault creates configDir and a commented config.yaml if none exists.
// It returns the file path.
func WriteDefault(configDir string) (string, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure config dir: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat config file: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
