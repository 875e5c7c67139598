package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger receives the progress and warning lines of a run.
type Logger interface {
	Progress(format string, args ...any)
	Warn(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Progress(string, ...any) {}
func (nopLogger) Warn(string, ...any)     {}

// Console prints progress to out and warnings to errOut.
// Colors are disabled by fatih/color when the output is not a terminal.
type Console struct {
	out    io.Writer
	errOut io.Writer

	heading *color.Color
	label   *color.Color
	warn    *color.Color
	fail    *color.Color
	success *color.Color
}

func NewConsole(out, errOut io.Writer) *Console {
	return &Console{
		out:     out,
		errOut:  errOut,
		heading: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		success: color.New(color.FgGreen),
	}
}

func (c *Console) Progress(format string, args ...any) {
	fmt.Fprintln(c.out, fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...any) {
	c.warn.Fprintf(c.errOut, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// Error prints a one-line failure to errOut.
func (c *Console) Error(format string, args ...any) {
	c.fail.Fprintf(c.errOut, "Error: %s\n", fmt.Sprintf(format, args...))
}

// Heading prints a "===== title =====" banner preceded by a blank line.
func (c *Console) Heading(title string) {
	fmt.Fprintln(c.out)
	c.heading.Fprintf(c.out, "===== %s =====\n", title)
}

// Field prints "label: value".
func (c *Console) Field(label string, value any) {
	fmt.Fprintf(c.out, "%s: %v\n", c.label.Sprint(label), value)
}

// Done prints a success line.
func (c *Console) Done(format string, args ...any) {
	c.success.Fprintf(c.out, "%s\n", fmt.Sprintf(format, args...))
}
