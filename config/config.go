// Package config loads bbtree settings: defaults first, then an optional
// YAML file, then BBTREE_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bbtree/render"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BBTREE_"

// MaxItemsCeiling is the largest accepted limits.max_items. A full tree over
// 20 items already holds about two million nodes.
const MaxItemsCeiling = 20

// Config is the full settings tree.
type Config struct {
	Server ServerConfig `json:"server" yaml:"server"`
	Limits LimitsConfig `json:"limits" yaml:"limits"`
	Render RenderConfig `json:"render" yaml:"render"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	// Addr is the listen address.
	Addr         string        `json:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `json:"rate_burst" yaml:"rate_burst"`
}

// LimitsConfig bounds request sizes.
type LimitsConfig struct {
	// MaxItems caps the item count accepted by the HTTP service, solve and
	// batch. The tree can grow to 2^(n+1)-1 nodes; at most MaxItemsCeiling.
	MaxItems int `json:"max_items" yaml:"max_items"`
}

// RenderConfig configures graphviz rendering.
type RenderConfig struct {
	// Graphviz is the dot binary name or path.
	Graphviz      string        `json:"graphviz" yaml:"graphviz"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	DefaultFormat string        `json:"default_format" yaml:"default_format"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // console, json or auto
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":5000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit:    5,
			RateBurst:    10,
		},
		Limits: LimitsConfig{
			MaxItems: 10,
		},
		Render: RenderConfig{
			Graphviz:      "dot",
			Timeout:       30 * time.Second,
			DefaultFormat: "pdf",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load builds a Config from the defaults, the file at path (skipped when
// path is empty) and the process environment, then validates it.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	// 1. Start with defaults
	cfg := Default()

	// 2. Overlay the file
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// 3. Overlay the environment
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	// 4. Validate the result
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = d

		return nil
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = i

		return nil
	}

	str("SERVER_ADDR", &cfg.Server.Addr)
	if err := dur("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout); err != nil {
		return err
	}
	if err := dur("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout); err != nil {
		return err
	}
	if v, ok := lookup(EnvPrefix + "SERVER_RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sSERVER_RATE_LIMIT: %w", EnvPrefix, err)
		}
		cfg.Server.RateLimit = f
	}
	if err := num("SERVER_RATE_BURST", &cfg.Server.RateBurst); err != nil {
		return err
	}
	if err := num("LIMITS_MAX_ITEMS", &cfg.Limits.MaxItems); err != nil {
		return err
	}
	str("RENDER_GRAPHVIZ", &cfg.Render.Graphviz)
	if err := dur("RENDER_TIMEOUT", &cfg.Render.Timeout); err != nil {
		return err
	}
	str("RENDER_DEFAULT_FORMAT", &cfg.Render.DefaultFormat)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must be >= 0")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be >= 1 when rate limiting")
	}
	if c.Limits.MaxItems < 1 || c.Limits.MaxItems > MaxItemsCeiling {
		return fmt.Errorf("limits.max_items must be between 1 and %d", MaxItemsCeiling)
	}
	if c.Render.Timeout <= 0 {
		return fmt.Errorf("render.timeout must be > 0")
	}
	if _, err := render.ParseFormat(c.Render.DefaultFormat); err != nil {
		return fmt.Errorf("render.default_format: %w", err)
	}
	switch c.Log.Format {
	case "console", "json", "auto":
	default:
		return fmt.Errorf("log.format must be console, json or auto")
	}

	return nil
}
