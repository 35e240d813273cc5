package telemetry

import (
	"os"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(newStdoutLogger(zapcore.InfoLevel))
}

func newStdoutLogger(level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.MessageKey = "msg"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(os.Stdout), level)
	return zap.New(core)
}

// Configure switches the process logger to the given level ("debug", "info", "warn", "error").
func Configure(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	current.Store(newStdoutLogger(lvl))
}

// SetLogger replaces the process logger and returns a func restoring the previous one.
func SetLogger(l *zap.Logger) func() {
	if l == nil {
		l = zap.NewNop()
	}
	prev := current.Swap(l)
	return func() {
		current.Store(prev)
	}
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	return current.Load()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = current.Load().Sync()
}

// Debug writes a debug-level event with the given fields.
func Debug(msg string, fields map[string]any) {
	current.Load().Debug(msg, toZap(fields)...)
}

// Info writes an info-level event with the given fields.
func Info(msg string, fields map[string]any) {
	current.Load().Info(msg, toZap(fields)...)
}

// Warn writes a warn-level event with the given fields.
func Warn(msg string, fields map[string]any) {
	current.Load().Warn(msg, toZap(fields)...)
}

// Error writes an error-level event with the given fields.
func Error(msg string, fields map[string]any) {
	current.Load().Error(msg, toZap(fields)...)
}

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
