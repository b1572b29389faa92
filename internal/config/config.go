// Package config loads dashboard server configuration from defaults, an
// optional YAML file, COVERLETTER_ environment variables and CLI flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jonathan/cover-letter-dashboard/internal/server/ratelimit"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nested keys: COVERLETTER_RATE_LIMIT__ENABLED -> rate_limit.enabled.
const EnvPrefix = "COVERLETTER_"

// DefaultConfigFile is picked up from the working directory when no
// explicit config path is given.
const DefaultConfigFile = "coverletter.yaml"

// Defaults
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultShutdownTimeout = 10 * time.Second
)

// RateLimitConfig controls per-client request limits.
type RateLimitConfig struct {
	Enabled         bool          `koanf:"enabled"`
	DefaultLimit    int           `koanf:"default_limit"`
	DefaultWindow   time.Duration `koanf:"default_window"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	Whitelist       []string      `koanf:"whitelist"`
	Blacklist       []string      `koanf:"blacklist"`
}

// Config holds all server and CLI settings.
type Config struct {
	Port            int             `koanf:"port"`
	LogLevel        string          `koanf:"log_level"`
	LogFormat       string          `koanf:"log_format"`
	DataFile        string          `koanf:"data_file"` // empty means built-in mock data
	ShutdownTimeout time.Duration   `koanf:"shutdown_timeout"`
	RateLimit       RateLimitConfig `koanf:"rate_limit"`
}

func defaults() map[string]any {
	rl := ratelimit.DefaultConfig()
	return map[string]any{
		"port":                        DefaultPort,
		"log_level":                   DefaultLogLevel,
		"log_format":                  DefaultLogFormat,
		"data_file":                   "",
		"shutdown_timeout":            DefaultShutdownTimeout,
		"rate_limit.enabled":          rl.Enabled,
		"rate_limit.default_limit":    rl.DefaultLimit,
		"rate_limit.default_window":   rl.DefaultWindow,
		"rate_limit.cleanup_interval": rl.CleanupInterval,
		"rate_limit.whitelist":        []string{},
		"rate_limit.blacklist":        []string{},
	}
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps COVERLETTER_RATE_LIMIT__DEFAULT_LIMIT to rate_limit.default_limit.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config error: unknown 'log_format' %q (want text or json)", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config error: 'shutdown_timeout' must be positive")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit <= 0 {
			return fmt.Errorf("config error: 'rate_limit.default_limit' must be positive")
		}
		if c.RateLimit.DefaultWindow <= 0 {
			return fmt.Errorf("config error: 'rate_limit.default_window' must be positive")
		}
		if c.RateLimit.CleanupInterval < 0 {
			return fmt.Errorf("config error: 'rate_limit.cleanup_interval' must be non-negative")
		}
	}
	return nil
}

// RateLimiterConfig converts the rate_limit section for ratelimit.NewLimiter.
func (c *Config) RateLimiterConfig() *ratelimit.Config {
	rl := ratelimit.DefaultConfig()
	rl.Enabled = c.RateLimit.Enabled
	rl.DefaultLimit = c.RateLimit.DefaultLimit
	rl.DefaultWindow = c.RateLimit.DefaultWindow
	rl.CleanupInterval = c.RateLimit.CleanupInterval
	rl.Whitelist = toSet(c.RateLimit.Whitelist)
	rl.Blacklist = toSet(c.RateLimit.Blacklist)
	return rl
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = true
		}
	}
	return set
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger returns a logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[strings.ToLower(c.LogLevel)]}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
