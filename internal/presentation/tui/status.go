package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Status prints colored one-line verdicts. Colors degrade to plain text
// when the writer is not a terminal.
type Status struct {
	out     *termenv.Output
	profile termenv.Profile
}

// NewStatus wraps w.
func NewStatus(w io.Writer) *Status {
	out := termenv.NewOutput(w)
	return &Status{out: out, profile: out.EnvColorProfile()}
}

func (s *Status) line(color, mark, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	styled := s.out.String(mark + " " + msg).Foreground(s.profile.Color(color))
	fmt.Fprintln(s.out, styled)
}

// OK prints a success line.
func (s *Status) OK(format string, args ...any) { s.line("#22c55e", "✔", format, args...) }

// Warn prints a warning line.
func (s *Status) Warn(format string, args ...any) { s.line("#eab308", "!", format, args...) }

// Fail prints a failure line.
func (s *Status) Fail(format string, args ...any) { s.line("#ef4444", "✘", format, args...) }
