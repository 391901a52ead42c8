// Package logger holds the process-wide zerolog logger used by the prng
// command. Library packages never log.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	SetConsoleWriter()
}

// Log returns the process logger.
func Log() *zerolog.Logger {
	return &log
}

// SetConsoleWriter switches to human readable output on stderr.
func SetConsoleWriter() {
	log = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = "15:04:05.000"
	})).With().Timestamp().Logger()
}

// SetJSONWriter switches to one JSON document per line on stderr.
func SetJSONWriter() {
	SetWriter(os.Stderr)
}

// SetWriter sends JSON output to w.
func SetWriter(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

// Configure selects the output format ("console" or "json") and the minimum
// level. Unknown levels fall back to info.
func Configure(format, level string) {
	if strings.EqualFold(format, "json") {
		SetJSONWriter()
	} else {
		SetConsoleWriter()
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	log = log.Level(lvl)
}
