package observe

import "context"

// Instruments bundles the telemetry primitives a guarded call needs.
type Instruments struct {
	Tracer   Tracer
	Metrics  Metrics
	Logger   Logger
	Recorder Recorder
}

// NewInstruments builds Instruments from an Observer. The recorder shares
// the observer's logger and the returned metrics.
func NewInstruments(obs Observer) (Instruments, error) {
	if obs == nil {
		return Instruments{}, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return Instruments{}, err
	}

	logger := obs.Logger()
	return Instruments{
		Tracer:   NewTracer(obs.Tracer()),
		Metrics:  metrics,
		Logger:   logger,
		Recorder: NewRecorder(logger, metrics),
	}, nil
}

// NopInstruments returns Instruments that record nothing.
func NopInstruments() Instruments {
	return Instruments{
		Tracer:   NewNoopTracer(),
		Metrics:  NewNoopMetrics(),
		Logger:   &noopLogger{},
		Recorder: NopRecorder(),
	}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct{}

func (*noopLogger) Info(context.Context, string, ...Field)  {}
func (*noopLogger) Warn(context.Context, string, ...Field)  {}
func (*noopLogger) Error(context.Context, string, ...Field) {}
func (*noopLogger) Debug(context.Context, string, ...Field) {}

func (l *noopLogger) WithOperation(OperationMeta) Logger { return l }
