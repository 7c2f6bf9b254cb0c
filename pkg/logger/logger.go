package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// std writes to stderr so stdout stays reserved for the simulation report.
var std = log.NewWithOptions(os.Stderr, log.Options{
	Level:           log.InfoLevel,
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
})

// Init configures the shared logger for an environment:
// production -> JSON at info, test -> text at warn, anything else -> text at info.
// Per-iteration events are logged at debug; enable them with SetLevel.
func Init(environment string) {
	InitWithWriter(environment, os.Stderr)
}

func InitWithWriter(environment string, w io.Writer) {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.InfoLevel,
	}

	switch environment {
	case EnvProduction:
		opts.Formatter = log.JSONFormatter
		opts.TimeFormat = time.RFC3339
	case EnvTest:
		opts.Level = log.WarnLevel
	}

	std = log.NewWithOptions(w, opts)
}

// SetLevel overrides the level picked by Init ("debug", "info", "warn", "error").
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

func Logger() *log.Logger {
	return std
}

func Debug(msg string, keyvals ...any) {
	std.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...any) {
	std.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	std.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	std.Error(msg, keyvals...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, keyvals ...any) {
	std.Fatal(msg, keyvals...)
}
