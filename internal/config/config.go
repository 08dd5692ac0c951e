// Package config loads the CLI configuration from defaults, config files,
// .env files and ANIMEFILTER_* environment variables.
package config

import (
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/theplant/animefilter/expression"
)

const EnvPrefix = "ANIMEFILTER"

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"   yaml:"database"`
	Evaluation EvaluationConfig `mapstructure:"evaluation" yaml:"evaluation"`
	Log        LogConfig        `mapstructure:"log"        yaml:"log"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"    yaml:"driver"`
	DSN      string `mapstructure:"dsn"       yaml:"dsn"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

type EvaluationConfig struct {
	Concurrency int              `mapstructure:"concurrency" yaml:"concurrency"`
	Complexity  ComplexityConfig `mapstructure:"complexity"  yaml:"complexity"`
	// CursorKey is a base64 AES key. When set, page cursors are encrypted.
	CursorKey string `mapstructure:"cursor_key" yaml:"cursor_key"`
}

type ComplexityConfig struct {
	MaxDepth            int `mapstructure:"max_depth"             yaml:"max_depth"`
	MaxNodes            int `mapstructure:"max_nodes"             yaml:"max_nodes"`
	MaxLogicalOperators int `mapstructure:"max_logical_operators" yaml:"max_logical_operators"`
	MaxLogicalDepth     int `mapstructure:"max_logical_depth"     yaml:"max_logical_depth"`
	MaxOrBranches       int `mapstructure:"max_or_branches"       yaml:"max_or_branches"`
}

// Limits converts the configured values. All zero disables the check.
func (c ComplexityConfig) Limits() *expression.ComplexityLimits {
	if c == (ComplexityConfig{}) {
		return nil
	}
	return &expression.ComplexityLimits{
		MaxDepth:            c.MaxDepth,
		MaxNodes:            c.MaxNodes,
		MaxLogicalOperators: c.MaxLogicalOperators,
		MaxLogicalDepth:     c.MaxLogicalDepth,
		MaxOrBranches:       c.MaxOrBranches,
	}
}

// CursorKeyBytes decodes CursorKey, which must hold 16, 24 or 32 bytes.
func (c EvaluationConfig) CursorKeyBytes() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.CursorKey)
	if err != nil {
		return nil, errors.Wrap(err, "evaluation.cursor_key is not base64")
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	}
	return nil, errors.Errorf("evaluation.cursor_key must decode to 16, 24 or 32 bytes, got %d", len(key))
}

type LogConfig struct {
	Level    string         `mapstructure:"level"    yaml:"level"`
	JSON     bool           `mapstructure:"json"     yaml:"json"`
	File     string         `mapstructure:"file"     yaml:"file"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

var envFiles = []string{".env", ".env.local"}

// Init points v at the config file and environment. An empty path searches
// ./config.yaml, ./config and $HOME/.animefilter. A missing file is not an error.
func Init(v *viper.Viper, path string) error {
	searchPaths := []string{".", "./config", "$HOME/.animefilter"}
	if path != "" {
		v.SetConfigFile(path)
		searchPaths = []string{filepath.Dir(path)}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}
	for _, dir := range searchPaths {
		for _, name := range envFiles {
			// Missing .env files are fine.
			_ = godotenv.Load(filepath.Join(dir, name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "read config file")
		}
	}
	return nil
}

// Load applies the defaults and decodes v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return errors.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Evaluation.CursorKey != "" {
		if _, err := c.Evaluation.CursorKeyBytes(); err != nil {
			return err
		}
	}
	if c.Evaluation.Concurrency < 0 {
		return errors.Errorf("evaluation.concurrency must not be negative, got %d", c.Evaluation.Concurrency)
	}
	return nil
}
