// Package tty provides terminal detection helpers shared by the logger,
// console formatting, and progress TUI packages.
package tty

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Stderr reports whether os.Stderr is an interactive terminal.
func Stderr() bool { return IsTerminal(os.Stderr) }

// Stdout reports whether os.Stdout is an interactive terminal.
func Stdout() bool { return IsTerminal(os.Stdout) }

// Accessible reports whether the ACCESSIBLE environment variable
// requests non-animated, screen-reader-friendly output. Bubble Tea
// spinners and the progress TUI fall back to plain line-based output
// when this is set, regardless of TTY state.
func Accessible() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// Size returns the current terminal width and height for fd, falling
// back to 80x24 when the size cannot be determined (not a terminal, or
// redirected to a file/pipe).
func Size(f *os.File) (width, height int) {
	if !IsTerminal(f) {
		return 80, 24
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
