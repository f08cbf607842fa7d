package observe

import "errors"

// Configuration errors returned by Config.Validate.
var (
	ErrMissingServiceName     = errors.New("observe: service name is required")
	ErrInvalidSamplePct       = errors.New("observe: sample percentage must be between 0.0 and 1.0")
	ErrInvalidTracingExporter = errors.New("observe: unknown tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observe: unknown metrics exporter")
	ErrInvalidLogLevel        = errors.New("observe: unknown log level")
)

// ErrNilObserver is returned by NewInstruments for a nil Observer.
var ErrNilObserver = errors.New("observe: observer is nil")

// Sample percentage bounds.
const (
	MinSamplePct = 0.0
	MaxSamplePct = 1.0
)

// RedactedFields lists keys masked in logs, span attributes and span events.
var RedactedFields = []string{
	"input",
	"inputs",
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"credential",
	"authorization",
}
