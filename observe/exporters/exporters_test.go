package exporters

import (
	"bytes"
	"context"
	"errors"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewTracingExporter(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: ""},
		{name: "none"},
		{name: "stdout"},
		{name: "otlp", env: map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "http://localhost:4317"}},
		{name: "otlp", env: map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT": ""}, wantErr: ErrEndpointNotConfigured},
		{name: "jaeger", env: map[string]string{"OTEL_EXPORTER_JAEGER_ENDPOINT": ""}, wantErr: ErrEndpointNotConfigured},
		{name: "zipkin", wantErr: ErrUnknownExporter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			exp, err := NewTracingExporter(context.Background(), tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTracingExporter(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr == nil && exp == nil {
				t.Fatal("expected non-nil exporter")
			}
		})
	}
}

func TestNewTracingExporter_StdoutWriter(t *testing.T) {
	var buf bytes.Buffer
	exp, err := NewTracingExporter(context.Background(), "stdout", WithWriter(&buf))
	if err != nil {
		t.Fatalf("NewTracingExporter() error = %v", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	_, span := tp.Tracer("test").Start(context.Background(), "tool.get_hotel")
	span.End()
	_ = tp.Shutdown(context.Background())

	if !bytes.Contains(buf.Bytes(), []byte("tool.get_hotel")) {
		t.Errorf("span not written to the configured writer: %s", buf.String())
	}
}

func TestNewMetricsReader(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: ""},
		{name: "none"},
		{name: "stdout"},
		{name: "prometheus"},
		{name: "otlp", env: map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "", "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT": ""}, wantErr: ErrEndpointNotConfigured},
		{name: "statsd", wantErr: ErrUnknownExporter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			reader, err := NewMetricsReader(context.Background(), tt.name, WithRegisterer(promclient.NewRegistry()))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewMetricsReader(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr == nil && reader == nil {
				t.Fatal("expected non-nil reader")
			}
		})
	}
}
