// Package debug provides opt-in diagnostic logging for git-pair.
//
// Logging is off unless GIT_PAIR_DEBUG is set or SetEnabled(true) is called
// (the CLI does this for the "debug" config key). Output goes to stderr in
// zerolog's console format so it never mixes with command output on stdout.
package debug

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	enabled           = os.Getenv("GIT_PAIR_DEBUG") != ""
	out     io.Writer = os.Stderr
	logger            = build()
)

func build() zerolog.Logger {
	level := zerolog.Disabled
	if enabled {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	return enabled
}

// SetEnabled turns debug logging on or off.
func SetEnabled(on bool) {
	enabled = on
	logger = build()
}

// SetOutput redirects debug output. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	out = w
	logger = build()
}

// Logf writes a formatted debug line.
func Logf(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}

// Event starts a structured debug entry tagged with op. The returned event
// is nil when logging is off; zerolog treats calls on a nil event as no-ops.
func Event(op string) *zerolog.Event {
	return logger.Debug().Str("op", op)
}
