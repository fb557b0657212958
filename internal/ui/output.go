package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK/Warn and Fail, mainly for tests.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

func OK(msg string)   { fmt.Fprintln(stdout, current.Success.Render(current.SymOK+" "+msg)) }
func Warn(msg string) { fmt.Fprintln(stdout, current.Advisory.Render(current.SymWarn+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, current.Error.Render(current.SymFail+" "+msg)) }

// TermWidth is the stdout width, or fallback when stdout is not a terminal.
func TermWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
