package observe

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"
)

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// ParseLogLevel parses a level name. Unknown names mean info.
func ParseLogLevel(s string) LogLevel {
	if i := slices.Index(levelNames[:], s); i >= 0 {
		return LogLevel(i)
	}
	return LevelInfo
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "info"
	}
	return levelNames[l]
}

func (l LogLevel) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogLogger writes one JSON object per line through log/slog.
type slogLogger struct {
	l *slog.Logger
}

// NewLogger creates a JSON logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a JSON logger writing to w. Each line carries
// timestamp, level and msg; fields named in RedactedFields are masked.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLogLevel(level).slog(),
		ReplaceAttr: replaceAttr,
	})
	return &slogLogger{l: slog.New(h)}
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	case slog.LevelKey:
		a.Value = slog.StringValue(strings.ToLower(a.Value.String()))
	default:
		if isRedactedField(a.Key) {
			a.Value = slog.StringValue(RedactedValue)
		}
	}
	return a
}

// WithOperation returns a logger that adds the operation fields to every
// line.
func (s *slogLogger) WithOperation(meta OperationMeta) Logger {
	args := []any{slog.String("tool.name", meta.Name)}
	if meta.CallID != "" {
		args = append(args, slog.String("tool.call_id", meta.CallID))
	}
	if meta.Workflow != "" {
		args = append(args, slog.String("tool.workflow", meta.Workflow))
	}
	return &slogLogger{l: s.l.With(args...)}
}

func (s *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelInfo, msg, fields)
}

func (s *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelWarn, msg, fields)
}

func (s *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelError, msg, fields)
}

func (s *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelDebug, msg, fields)
}

func (s *slogLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if !s.l.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, len(fields))
	for i, f := range fields {
		attrs[i] = slog.Any(f.Key, f.Value)
	}
	s.l.LogAttrs(ctx, level, msg, attrs...)
}

func isRedactedField(key string) bool {
	return slices.Contains(RedactedFields, key)
}

var _ Logger = (*slogLogger)(nil)
