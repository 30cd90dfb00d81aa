// Package logger provides leveled logging with support for debug, info, warn, and error levels.
// It keeps a printf-style package API on top of a zap logger, so call sites stay short
// while output can be switched between JSON and console encoding.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	defaultLogger = zap.NewNop()
	sugar         = defaultLogger.Sugar()
)

// ParseLevel maps a configuration level name to a zap level.
// Unknown names fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init initializes the default logger with the specified level and format.
// Format "json" uses the production JSON encoder; anything else uses the console encoder.
func Init(level string, format string) {
	var cfg zap.Config
	if strings.ToLower(format) == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: falling back to no-op logger: %v\n", err)
		l = zap.NewNop()
	}
	Set(l)
}

// Set replaces the default logger. Tests use it to install an observer core.
func Set(l *zap.Logger) {
	defaultLogger = l
	sugar = l.Sugar()
}

// L returns the underlying zap logger for callers that want structured fields.
func L() *zap.Logger {
	return defaultLogger
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = defaultLogger.Sync()
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	sugar.Debugf(format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	sugar.Infof(format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	sugar.Warnf(format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	sugar.Errorf(format, args...)
}

// Fatal logs a message and exits
func Fatal(format string, args ...interface{}) {
	sugar.Errorf("[FATAL] "+format, args...)
	Sync()
	os.Exit(1)
}
