package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

// IsInteractive reports whether both stdin and stdout are terminals.
// Pickers and prompts degrade to plain listings when this is false.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// Confirm prints prompt and reads a yes/no answer from r. An empty
// answer takes the default; a read failure answers no.
func Confirm(r io.Reader, w io.Writer, prompt string, defaultYes bool) bool {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(w, "%s %s ", prompt, suffix)

	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}
