package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jonwraymond/toolguard/observe"
	"github.com/jonwraymond/toolguard/redisconn"
	"github.com/jonwraymond/toolguard/secret"
)

// Config is the full runtime configuration.
type Config struct {
	ServiceName    string `env:"SERVICE_NAME" envDefault:"toolguard"`
	ServiceVersion string `env:"SERVICE_VERSION"`

	Redis   redisconn.Config
	Auth    Auth
	Tracing Tracing
	Metrics Metrics
	Logging Logging
}

// Auth configures bearer token verification. Verification is off when
// Secret is empty.
type Auth struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER"`
	Audience string        `env:"JWT_AUDIENCE"`
	Leeway   time.Duration `env:"JWT_LEEWAY" envDefault:"30s"`
}

// Enabled reports whether a signing secret is configured.
func (a Auth) Enabled() bool {
	return a.Secret != ""
}

type Tracing struct {
	Enabled   bool    `env:"TRACING_ENABLED" envDefault:"false"`
	Exporter  string  `env:"TRACING_EXPORTER" envDefault:"stdout"`
	SamplePct float64 `env:"TRACING_SAMPLE_PCT" envDefault:"1.0"`
}

type Metrics struct {
	Enabled  bool   `env:"METRICS_ENABLED" envDefault:"false"`
	Exporter string `env:"METRICS_EXPORTER" envDefault:"prometheus"`
}

type Logging struct {
	Enabled bool   `env:"LOG_ENABLED" envDefault:"true"`
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment.
//
// With no arguments a .env file in the working directory is loaded if it
// exists. Named files must exist.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, errors.Join(ErrEnvFile, err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if cfg.Auth.Secret != "" {
		key, err := secret.ExpandEnvStrict(cfg.Auth.Secret)
		if err != nil {
			return Config{}, errors.Join(ErrJWTSecret, err)
		}
		cfg.Auth.Secret = key
	}

	if cfg.Redis.URL != "" {
		url, err := secret.ExpandEnvStrict(cfg.Redis.URL)
		if err != nil {
			return Config{}, errors.Join(ErrRedisURL, err)
		}
		cfg.Redis.URL = url
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the telemetry settings.
func (c Config) Validate() error {
	oc := c.Observe()
	if err := oc.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Redis.RetryAttempts < 0 {
		return fmt.Errorf("config: REDIS_RETRY_ATTEMPTS must not be negative, got %d", c.Redis.RetryAttempts)
	}
	if c.Auth.Leeway < 0 {
		return fmt.Errorf("config: JWT_LEEWAY must not be negative, got %s", c.Auth.Leeway)
	}
	return nil
}

// Observe returns the telemetry part of c as an observe.Config.
func (c Config) Observe() observe.Config {
	return observe.Config{
		ServiceName: c.ServiceName,
		Version:     c.ServiceVersion,
		Tracing: observe.TracingConfig{
			Enabled:   c.Tracing.Enabled,
			Exporter:  c.Tracing.Exporter,
			SamplePct: c.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Metrics.Enabled,
			Exporter: c.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: c.Logging.Enabled,
			Level:   c.Logging.Level,
		},
	}
}
