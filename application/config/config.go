// Package config loads and validates contract host settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/reglet-dev/contract-sdk/query"
)

// EnvPrefix prefixes every environment variable the host reads.
const EnvPrefix = "CONTRACT_HOST"

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New()

// HostConfig holds the settings of a contract host process.
type HostConfig struct {
	// ModuleName is the import module contracts link against.
	ModuleName string `mapstructure:"module_name" validate:"required"`
	// MaxRequestSize caps the bytes a contract may pass to one host function.
	MaxRequestSize uint32 `mapstructure:"max_request_size" validate:"min=1"`
	// MaxQueryDepth bounds filter nesting when decoding queries.
	MaxQueryDepth int `mapstructure:"max_query_depth" validate:"min=1,max=1024"`
	// CacheSize is the number of query results kept for fetch. Zero disables caching.
	CacheSize int `mapstructure:"cache_size" validate:"min=0"`
	// SQLitePath is the state database, or ":memory:".
	SQLitePath string `mapstructure:"sqlite_path" validate:"required"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	// LogFormat is json or text.
	LogFormat string `mapstructure:"log_format" validate:"oneof=json text"`
	// MetricsFile receives a Prometheus textfile snapshot after each run when set.
	MetricsFile string `mapstructure:"metrics_file"`
}

// Default returns the settings used when nothing overrides them.
func Default() HostConfig {
	return HostConfig{
		ModuleName:     "contract_host",
		MaxRequestSize: 1 << 20,
		MaxQueryDepth:  query.DefaultMaxDepth,
		CacheSize:      128,
		SQLitePath:     ":memory:",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads settings from the optional YAML file at path and from
// CONTRACT_HOST_* environment variables, which take precedence. An empty
// path skips the file.
func Load(path string) (*HostConfig, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("module_name", def.ModuleName)
	v.SetDefault("max_request_size", def.MaxRequestSize)
	v.SetDefault("max_query_depth", def.MaxQueryDepth)
	v.SetDefault("cache_size", def.CacheSize)
	v.SetDefault("sqlite_path", def.SQLitePath)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("metrics_file", def.MetricsFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg HostConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its constraints.
func (c *HostConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Level returns LogLevel as a slog.Level.
func (c *HostConfig) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the host logger described by LogLevel and LogFormat.
func (c *HostConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
