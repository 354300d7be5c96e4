package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger writes human readable logs to w. Debug also logs tokens and response bodies.
func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
