package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// status writes coloured one line messages to stderr.
type status struct {
	out     io.Writer
	success *color.Color
	warning *color.Color
	failure *color.Color
	hint    *color.Color
}

func newStatus(out io.Writer, colored bool) *status {
	s := &status{
		out:     out,
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgHiRed, color.Bold),
		hint:    color.New(color.FgHiCyan),
	}
	if !colored {
		for _, c := range []*color.Color{s.success, s.warning, s.failure, s.hint} {
			c.DisableColor()
		}
	}
	return s
}

func (s *status) Success(format string, args ...any) {
	s.success.Fprintf(s.out, "✓ "+format+"\n", args...)
}

func (s *status) Warn(format string, args ...any) {
	s.warning.Fprintf(s.out, "! "+format+"\n", args...)
}

func (s *status) Fail(format string, args ...any) {
	s.failure.Fprintf(s.out, "✗ "+format+"\n", args...)
}

func (s *status) Hint(format string, args ...any) {
	s.hint.Fprintf(s.out, "  "+format+"\n", args...)
}

func (s *status) Info(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
