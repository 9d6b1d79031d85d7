package log

import (
	"sync"

	"go.uber.org/zap"
)

var _ Log = (*Logger)(nil)

var (
	process     *Logger
	processOnce sync.Once
)

type Logger struct {
	z     *zap.Logger
	level zap.AtomicLevel
}

// New builds a JSON logger writing to stderr. The first logger built becomes
// the process logger returned by Provide.
func New(level Level) *Logger {
	return NewWithOutput(level, "stderr")
}

// NewWithOutput is New with explicit zap output paths (files, "stdout", "stderr").
func NewWithOutput(level Level, paths ...string) *Logger {
	atomic := zap.NewAtomicLevelAt(level.zap())
	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	cfg.OutputPaths = paths
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	l := &Logger{z: z, level: atomic}
	processOnce.Do(func() { process = l })
	return l
}

func NewNop() *Logger {
	return &Logger{z: zap.NewNop(), level: zap.NewAtomicLevelAt(zap.FatalLevel)}
}

// FromZap wraps an existing zap logger. Level filtering is left to its core.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{z: z, level: zap.NewAtomicLevelAt(zap.DebugLevel)}
}

// Provide returns the process logger, or a no-op logger when New was never called.
func Provide() *Logger {
	if process == nil {
		return NewNop()
	}
	return process
}

func (l *Logger) Log(level Level, msg string, fields ...Field) {
	if l.level.Enabled(level.zap()) {
		l.z.Log(level.zap(), msg, zapFields(fields)...)
	}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.Log(LevelDebug, msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.Log(LevelInfo, msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.Log(LevelWarn, msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.Log(LevelError, msg, fields...) }

func (l *Logger) With(fields ...Field) Log {
	return &Logger{z: l.z.With(zapFields(fields)...), level: l.level}
}

func (l *Logger) SetLevel(level Level) { l.level.SetLevel(level.zap()) }
func (l *Logger) GetLevel() Level      { return Level(l.level.Level()) }

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.z.Sync() }

func zapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = f.zf
	}
	return out
}
