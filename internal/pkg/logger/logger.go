package logger

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/doeshing/hackassist/internal/ports"
)

// Zap implements ports.Logger on top of a zap logger.
type Zap struct {
	log *zap.Logger
}

// New creates a logger. Non-verbose loggers discard everything so that
// diagnostics never interleave with the interactive transcript.
func New(verbose bool) *Zap {
	if !verbose {
		return &Zap{log: zap.NewNop()}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return &Zap{log: zap.NewNop()}
	}
	return &Zap{log: log}
}

// Wrap adapts an existing zap logger.
func Wrap(log *zap.Logger) *Zap {
	if log == nil {
		log = zap.NewNop()
	}
	return &Zap{log: log}
}

// With returns a child logger that always carries the given fields.
func (l *Zap) With(fields map[string]interface{}) *Zap {
	return &Zap{log: l.log.With(toZap(fields)...)}
}

func (l *Zap) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toZap(fields)...)
}

func (l *Zap) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toZap(fields)...)
}

func (l *Zap) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toZap(fields)...)
}

func (l *Zap) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error(msg, append(toZap(fields), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *Zap) Sync() error {
	return l.log.Sync()
}

func toZap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		out = append(out, zap.Any(key, fields[key]))
	}
	return out
}

var _ ports.Logger = (*Zap)(nil)
