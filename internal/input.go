package internal

import (
	"os"

	"golang.org/x/term"
)

// IsPipedInput reports whether stdin is not a terminal, in which case input may come from a pipe and the user
// cannot be prompted.
func IsPipedInput() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}
