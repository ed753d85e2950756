// Package config loads roster settings from a YAML file and ROSTER_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for when no path is given.
const FileName = "roster.yaml"

// EnvPrefix prefixes every environment override, e.g. ROSTER_DATA_PATH.
const EnvPrefix = "ROSTER"

// Backend names.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Config is the complete roster configuration.
type Config struct {
	Data       DataConfig       `yaml:"data" mapstructure:"data" json:"data"`
	Admin      AdminConfig      `yaml:"admin" mapstructure:"admin" json:"admin"`
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation" json:"validation"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging" json:"logging"`
}

// DataConfig selects where records live.
type DataConfig struct {
	Backend    string `yaml:"backend" mapstructure:"backend" json:"backend"`
	Path       string `yaml:"path" mapstructure:"path" json:"path"`
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path" json:"sqlite_path"`
}

// AdminConfig holds the admin gate credentials.
// An empty PasswordHash disables the gate.
type AdminConfig struct {
	ID           string `yaml:"id" mapstructure:"id" json:"id"`
	PasswordHash string `yaml:"password_hash" mapstructure:"password_hash" json:"password_hash"`
	MaxAttempts  int    `yaml:"max_attempts" mapstructure:"max_attempts" json:"max_attempts"`
}

// ValidationConfig holds input rules for new and updated records.
type ValidationConfig struct {
	MinAge int `yaml:"min_age" mapstructure:"min_age" json:"min_age"`
	MaxAge int `yaml:"max_age" mapstructure:"max_age" json:"max_age"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level" json:"level"`
	Format string `yaml:"format" mapstructure:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Backend:    BackendText,
			Path:       "students.txt",
			SQLitePath: "students.db",
		},
		Admin: AdminConfig{
			ID:          "admin",
			MaxAttempts: 3,
		},
		Validation: ValidationConfig{
			MinAge: 15,
			MaxAge: 80,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration. With an explicit path that file must exist;
// otherwise roster.yaml is looked up in the working directory and then in
// $XDG_CONFIG_HOME/roster (or ~/.config/roster), and its absence is fine.
// Environment variables override file values in both cases.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(userConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Data.Backend {
	case BackendText:
		if c.Data.Path == "" {
			return fmt.Errorf("data.path is required for the text backend")
		}
	case BackendSQLite:
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("data.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("data.backend %q is invalid (must be text or sqlite)", c.Data.Backend)
	}

	if c.Validation.MinAge > c.Validation.MaxAge {
		return fmt.Errorf("validation.min_age (%d) must not exceed validation.max_age (%d)",
			c.Validation.MinAge, c.Validation.MaxAge)
	}

	if c.Admin.PasswordHash != "" && c.Admin.ID == "" {
		return fmt.Errorf("admin.id is required when admin.password_hash is set")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is invalid (must be debug, info, warn or error)", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is invalid (must be text or json)", c.Logging.Format)
	}

	return nil
}

// Write marshals cfg as YAML to path. An existing file is only replaced
// when force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Encode returns cfg as YAML.
func Encode(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// setDefaults registers every key so AutomaticEnv can override it even when
// the file does not mention it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("data.backend", d.Data.Backend)
	v.SetDefault("data.path", d.Data.Path)
	v.SetDefault("data.sqlite_path", d.Data.SQLitePath)
	v.SetDefault("admin.id", d.Admin.ID)
	v.SetDefault("admin.password_hash", d.Admin.PasswordHash)
	v.SetDefault("admin.max_attempts", d.Admin.MaxAttempts)
	v.SetDefault("validation.min_age", d.Validation.MinAge)
	v.SetDefault("validation.max_age", d.Validation.MaxAge)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "roster")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "roster")
}
