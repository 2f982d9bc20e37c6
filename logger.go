package core

import (
	"log/slog"
	"os"
)

var logLevel = new(slog.LevelVar)

// ConfigureLogging sets up the package-default logger with a TextHandler over
// stdout at the given level.
//
// The level is never read from an environment variable here: callers (the
// process embedding this package) pass the level explicitly instead.
func ConfigureLogging(level slog.Level) {
	logLevel.Set(level)
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel adjusts the level used by the logger configured via ConfigureLogging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}
