// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_ANALYZER_SERVER_PORT
const EnvPrefix = "RESUME_ANALYZER"

// Suggestion template selection strategies
const (
	StrategyRandom = "random"
	StrategyFirst  = "first"
)

// Config holds every tunable of the analyzer. Values come from, in increasing
// precedence: defaults, an optional YAML/JSON file, environment variables.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" json:"server"`
	CatalogPath string            `mapstructure:"catalog-path" json:"catalog_path,omitempty"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions" json:"suggestions"`
	Log         LogConfig         `mapstructure:"log" json:"log"`
	RateLimit   RateLimitConfig   `mapstructure:"rate-limit" json:"rate_limit"`
}

// ServerConfig configures the HTTP transport
type ServerConfig struct {
	Port           int           `mapstructure:"port" json:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout" json:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout" json:"write_timeout" validate:"gt=0"`
	MaxUploadBytes int64         `mapstructure:"max-upload-bytes" json:"max_upload_bytes" validate:"gt=0"`
	CORSOrigins    []string      `mapstructure:"cors-origins" json:"cors_origins"`
}

// SuggestionsConfig selects how suggestion templates are chosen
type SuggestionsConfig struct {
	Strategy string `mapstructure:"strategy" json:"strategy" validate:"oneof=random first"`
	// Seed seeds the random strategy; 0 seeds from the clock
	Seed uint64 `mapstructure:"seed" json:"seed"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

// RateLimitConfig configures per-client token buckets on /analyze
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled" json:"enabled"`
	Limit   int           `mapstructure:"limit" json:"limit" validate:"gte=0"`
	Window  time.Duration `mapstructure:"window" json:"window" validate:"gte=0"`
	Burst   int           `mapstructure:"burst" json:"burst" validate:"gte=0"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxUploadBytes: 16 << 20,
			CORSOrigins:    []string{"*"},
		},
		Suggestions: SuggestionsConfig{Strategy: StrategyRandom},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Limit:   30,
			Window:  time.Minute,
			Burst:   10,
		},
	}
}

// Load reads configuration. An empty path skips the file and uses defaults
// plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override nested values
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read-timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write-timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max-upload-bytes", d.Server.MaxUploadBytes)
	v.SetDefault("server.cors-origins", d.Server.CORSOrigins)
	v.SetDefault("catalog-path", d.CatalogPath)
	v.SetDefault("suggestions.strategy", d.Suggestions.Strategy)
	v.SetDefault("suggestions.seed", d.Suggestions.Seed)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("rate-limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate-limit.limit", d.RateLimit.Limit)
	v.SetDefault("rate-limit.window", d.RateLimit.Window)
	v.SetDefault("rate-limit.burst", d.RateLimit.Burst)
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit == 0 || c.RateLimit.Window == 0) {
		return fmt.Errorf("config error: 'rate-limit' needs a positive limit and window when enabled")
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
