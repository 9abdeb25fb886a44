// Package ui prints the shell's result lines and asks for confirmation.
// Colors are applied only when the output is a terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type tone int

const (
	toneSuccess tone = iota
	toneWarning
	toneError
	toneBold
)

// UI writes one line per result to w
type UI struct {
	w           io.Writer
	interactive bool
	palette     map[tone]*color.Color
}

// NewWithWriter returns a UI printing to w. Prompts are allowed until
// SetNonInteractive(true) is called.
func NewWithWriter(w io.Writer) *UI {
	palette := map[tone]*color.Color{
		toneSuccess: color.New(color.FgGreen),
		toneWarning: color.New(color.FgYellow),
		toneError:   color.New(color.FgRed),
		toneBold:    color.New(color.Bold),
	}
	plain := !IsTerminal(w)
	for _, c := range palette {
		if plain {
			c.DisableColor()
		}
	}
	return &UI{w: w, interactive: true, palette: palette}
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetNonInteractive disables prompting when enabled is true.
func (u *UI) SetNonInteractive(enabled bool) {
	u.interactive = !enabled
}

// IsNonInteractive reports whether prompts are disabled
func (u *UI) IsNonInteractive() bool {
	return !u.interactive
}

func (u *UI) line(t tone, format string, args ...any) {
	u.palette[t].Fprintf(u.w, format+"\n", args...)
}

// Prompt writes the prompt without a trailing newline.
func (u *UI) Prompt(prompt string) {
	u.palette[toneBold].Fprint(u.w, prompt)
}

// Print prints a plain result line
func (u *UI) Print(msg string) {
	fmt.Fprintln(u.w, msg)
}

// Printf prints a formatted plain result line
func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.w, format+"\n", args...)
}

// Write copies raw content to the output, ending it with a newline. Empty
// content prints an empty line.
func (u *UI) Write(content []byte) {
	u.w.Write(content)
	if n := len(content); n == 0 || content[n-1] != '\n' {
		io.WriteString(u.w, "\n")
	}
}

// Success prints a success message
func (u *UI) Success(msg string) {
	u.line(toneSuccess, "%s", msg)
}

// Successf prints a formatted success message
func (u *UI) Successf(format string, args ...any) {
	u.line(toneSuccess, format, args...)
}

// Invalid reports a usage or resolution error.
func (u *UI) Invalid(msg string) {
	u.line(toneWarning, "Invalid input: %s.", msg)
}

// Failed reports an operation that could not complete.
func (u *UI) Failed(prefix string, err error) {
	u.line(toneError, "%s: %v", prefix, err)
}

// Bold prints a bold line, used for headers
func (u *UI) Bold(msg string) {
	u.line(toneBold, "%s", msg)
}
