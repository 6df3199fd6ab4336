// Package logging configures the global zerolog logger used across every
// operator and loop. Messages follow the spec's symbol-prefix convention:
// '+' event, '-' negation, 'o' transition, 'x' failure, '!' liveness,
// '?' hint — callers prefix .Msg() themselves, this package only wires level
// and output format.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure sets the global zerolog level and writer. levelStr is one of
// zerolog's level names ("debug", "info", ...); an empty or invalid value
// falls back to "info", matching the supervisor's two operating levels
// (Debug for development, Info for production). pretty selects a
// human-readable console writer over raw JSON lines.
func Configure(levelStr string, pretty bool) {
	level := parseLevel(levelStr)
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stderr
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(w).With().Timestamp()
	if level <= zerolog.DebugLevel {
		logCtx = logCtx.Caller()
	}

	log.Logger = logCtx.Logger().Level(level)
	zerolog.DefaultContextLogger = &log.Logger
}

func parseLevel(levelString string) zerolog.Level {
	if levelString == "" {
		levelString = "info"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelString))
	if err != nil {
		log.Error().Err(err).Str("logLevel", levelString).Msg("x invalid log level, defaulting to info")
		return zerolog.InfoLevel
	}
	return level
}
