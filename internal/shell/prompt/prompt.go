// Package prompt implements operator interaction for the deploy pipeline.
// This is part of the Imperative Shell - it reads from the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// =============================================================================
// Source Interface
// =============================================================================

// Source abstracts operator input so credential resolution and confirmation
// can be tested without a terminal.
type Source interface {
	// Confirm asks a yes/no question. Only "y" and "yes" (case-insensitive)
	// count as yes.
	Confirm(question string) (bool, error)

	// ReadLine reads a single line of visible input.
	ReadLine(label string) (string, error)

	// ReadSecret reads a line without echoing it to the terminal.
	ReadSecret(label string) (string, error)
}

// =============================================================================
// Terminal
// =============================================================================

// Terminal is a Source backed by stdin/stderr.
type Terminal struct {
	reader *bufio.Reader
}

// NewTerminal creates a terminal prompt source reading from stdin.
func NewTerminal() *Terminal {
	return &Terminal{reader: bufio.NewReader(os.Stdin)}
}

// Confirm asks a yes/no question on stderr and reads the answer.
func (t *Terminal) Confirm(question string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ReadLine reads a single line of visible input.
func (t *Terminal) ReadLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret reads a line with terminal echo disabled.
func (t *Terminal) ReadSecret(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
