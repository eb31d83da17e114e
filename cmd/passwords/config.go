package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration. Values are applied in order: defaults,
// the YAML config file, then command-line flags.
type Config struct {
	Server     string        `yaml:"server" validate:"required,url"`
	Username   string        `yaml:"username" validate:"required"`
	SessionDir string        `yaml:"session_dir"`
	LogLevel   string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
	Redis      RedisConfig   `yaml:"redis"`

	// OTLPEndpoint receives request traces over OTLP/gRPC when set.
	OTLPEndpoint string `yaml:"otlp_endpoint" validate:"omitempty,hostname_port"`

	// MetricsFile receives request metrics in the Prometheus text format
	// when the command finishes.
	MetricsFile string `yaml:"metrics_file"`
}

// RedisConfig selects the Redis session store when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Prefix   string `yaml:"prefix"`
}

var validate = validator.New()

// DefaultConfigPath is where the config file is looked up unless --config
// is given.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "passwords.yaml"
	}
	return filepath.Join(dir, "passwords", "config.yaml")
}

func defaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Timeout:  30 * time.Second,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error
// unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s is invalid (%s)", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
