package observe

import (
	"errors"
	"fmt"
	"slices"
)

// Config holds all configuration for the Observer.
type Config struct {
	ServiceName string
	Version     string
	Tracing     TracingConfig
	Metrics     MetricsConfig
	Logging     LoggingConfig
}

// TracingConfig configures the tracing subsystem.
type TracingConfig struct {
	Enabled   bool
	Exporter  string  // otlp|jaeger|stdout|none
	SamplePct float64 // 0.0-1.0
}

// MetricsConfig configures the metrics subsystem.
type MetricsConfig struct {
	Enabled  bool
	Exporter string // otlp|prometheus|stdout|none
}

// LoggingConfig configures the logging subsystem.
type LoggingConfig struct {
	Enabled bool
	Level   string // debug|info|warn|error
}

// An empty name is accepted everywhere and means "none".
var (
	tracingExporters = []string{"", "none", "stdout", "otlp", "jaeger"}
	metricsExporters = []string{"", "none", "stdout", "otlp", "prometheus"}
	logLevels        = []string{"", "debug", "info", "warn", "error"}
)

// Validate reports every problem in c. Disabled subsystems are not checked.
func (c *Config) Validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, ErrMissingServiceName)
	}
	if c.Tracing.Enabled {
		if !slices.Contains(tracingExporters, c.Tracing.Exporter) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTracingExporter, c.Tracing.Exporter))
		}
		if c.Tracing.SamplePct < MinSamplePct || c.Tracing.SamplePct > MaxSamplePct {
			errs = append(errs, fmt.Errorf("%w: got %g", ErrInvalidSamplePct, c.Tracing.SamplePct))
		}
	}
	if c.Metrics.Enabled && !slices.Contains(metricsExporters, c.Metrics.Exporter) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.Metrics.Exporter))
	}
	if c.Logging.Enabled && !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}
	return errors.Join(errs...)
}
