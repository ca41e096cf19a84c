// Package config loads game settings from lantern.yaml, .env and LANTERN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samdwyer/lantern/internal/telemetry"
	"github.com/samdwyer/lantern/internal/world"
)

// Config holds game configuration options.
type Config struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	// Seed for dungeon generation. 0 means the player is asked for one.
	Seed int64 `mapstructure:"seed"`

	LOSRadius int    `mapstructure:"los_radius"`
	SavePath  string `mapstructure:"save_path"`

	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// TelemetryConfig controls tracing and metrics export.
type TelemetryConfig struct {
	Tracing     bool            `mapstructure:"tracing"`
	Endpoint    string          `mapstructure:"endpoint"`
	Insecure    bool            `mapstructure:"insecure"`
	SampleRatio float64         `mapstructure:"sample_ratio"`
	Environment string          `mapstructure:"environment"`
	Honeycomb   HoneycombConfig `mapstructure:"honeycomb"`
	MetricsAddr string          `mapstructure:"metrics_addr"`
}

// HoneycombConfig holds the Honeycomb credentials. The key is also read from
// HONEYCOMB_LANTERN_API_KEY.
type HoneycombConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Dataset string `mapstructure:"dataset"`
}

const honeycombEndpoint = "https://api.honeycomb.io"

// TracingOptions resolves the exporter settings for telemetry.Setup. A
// Honeycomb key with no explicit endpoint sends traces to Honeycomb.
func (t TelemetryConfig) TracingOptions(version string) telemetry.TracingOptions {
	opts := telemetry.TracingOptions{
		Endpoint:       t.Endpoint,
		Insecure:       t.Insecure,
		SampleRatio:    t.SampleRatio,
		ServiceVersion: version,
		Environment:    t.Environment,
	}
	if t.Honeycomb.APIKey != "" {
		if opts.Endpoint == "" {
			opts.Endpoint = honeycombEndpoint
		}
		opts.Headers = map[string]string{
			"x-honeycomb-team":    t.Honeycomb.APIKey,
			"x-honeycomb-dataset": t.Honeycomb.Dataset,
		}
	}
	return opts
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func setDefaults(v *viper.Viper) {
	v.SetDefault("width", world.DefaultWidth)
	v.SetDefault("height", world.DefaultHeight)
	v.SetDefault("seed", 0)
	v.SetDefault("los_radius", world.DefaultLOSRadius)
	v.SetDefault("save_path", "lantern.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "lantern.log")
	v.SetDefault("telemetry.tracing", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("telemetry.environment", "")
	v.SetDefault("telemetry.honeycomb.api_key", "")
	v.SetDefault("telemetry.honeycomb.dataset", "lantern")
	v.SetDefault("telemetry.metrics_addr", "")
}

// Load reads path/.env into the process environment (if present), then
// path/lantern.yaml (optional) and LANTERN_* variables, and validates the
// result. LANTERN_LOG_LEVEL maps to log.level.
func Load(path string) (*Config, error) {
	// Not fatal - the variables might be set directly
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("lantern")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LANTERN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Honeycomb credentials are also accepted under their unprefixed names
	_ = v.BindEnv("telemetry.honeycomb.api_key", "LANTERN_TELEMETRY_HONEYCOMB_API_KEY", "HONEYCOMB_LANTERN_API_KEY")
	_ = v.BindEnv("telemetry.honeycomb.dataset", "LANTERN_TELEMETRY_HONEYCOMB_DATASET", "HONEYCOMB_LANTERN_DATASET")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
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

// Validate rejects settings the generator cannot use.
func (c *Config) Validate() error {
	if err := world.ValidateDimensions(c.Width, c.Height); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.LOSRadius <= 0 {
		return fmt.Errorf("%w: los_radius must be positive, got %d", ErrInvalidConfig, c.LOSRadius)
	}
	if c.SavePath == "" {
		return fmt.Errorf("%w: save_path is empty", ErrInvalidConfig)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: telemetry.sample_ratio must be within [0, 1], got %g", ErrInvalidConfig, c.Telemetry.SampleRatio)
	}
	if c.Telemetry.Endpoint != "" {
		if u, err := url.Parse(c.Telemetry.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: telemetry.endpoint %q is not an absolute URL", ErrInvalidConfig, c.Telemetry.Endpoint)
		}
	}
	return nil
}
