package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a config level name to a zerolog level (defaults to info)
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a logger writing to out. Reports own stdout, so callers pass stderr.
func New(level, format string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	if format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).
			Level(ParseLevel(level)).
			With().Timestamp().Logger()
	}

	// JSON format (default)
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Init initializes the global logger with the specified level and format
func Init(level, format string) {
	log.Logger = New(level, format, os.Stderr)
}

// Get returns a reference to the global logger
func Get() *zerolog.Logger {
	return &log.Logger
}
