package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the logging facade every package depends on. Only this package
// knows about zap.
type Log interface {
	Log(level Level, msg string, fields ...Field)

	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	With(fields ...Field) Log

	SetLevel(level Level)
	GetLevel() Level
}

// Level uses zap's numbering so conversions are plain casts.
type Level int8

const (
	LevelDebug = Level(zapcore.DebugLevel)
	LevelInfo  = Level(zapcore.InfoLevel)
	LevelWarn  = Level(zapcore.WarnLevel)
	LevelError = Level(zapcore.ErrorLevel)
)

func (l Level) String() string { return zapcore.Level(l).String() }

func (l Level) zap() zapcore.Level { return zapcore.Level(l) }

// ParseLevel accepts zap level names; the empty string means info.
func ParseLevel(s string) (Level, error) {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return Level(level), nil
}

// Field is one structured key/value pair.
type Field struct {
	zf zap.Field
}

func Bool(key string, val bool) Field       { return Field{zap.Bool(key, val)} }
func Float64(key string, val float64) Field { return Field{zap.Float64(key, val)} }
func Int(key string, val int) Field         { return Field{zap.Int(key, val)} }
func String(key string, val string) Field   { return Field{zap.String(key, val)} }
func Uint64(key string, val uint64) Field   { return Field{zap.Uint64(key, val)} }

// Stringer defers formatting until the entry is actually written.
func Stringer(key string, val fmt.Stringer) Field { return Field{zap.Stringer(key, val)} }

// Point logs an x/y pair as a nested object.
func Point(key string, x, y float64) Field {
	return Field{zap.Object(key, zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddFloat64("x", x)
		enc.AddFloat64("y", y)
		return nil
	}))}
}

func Error(err error) Field { return Field{zap.Error(err)} }
