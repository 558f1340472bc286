// Package terminal implements the screen collaborators of the profile
// controller for a line-oriented terminal: confirmation prompts, screen
// navigation, rendering and loading images from disk.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dtroode/lostfound/internal/profile"
)

// Prompt reads answers line by line. The interactive shell reads its commands
// through the same Prompt so buffered input is never lost between the two.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

var _ profile.ConfirmationPrompt = (*Prompt)(nil)

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Ask asks a yes/no question. Anything but y or yes, including end of input,
// is a no.
func (p *Prompt) Ask(message string) bool {
	answer, err := p.ReadLine(message + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ReadLine prints label and returns the next line without surrounding spaces.
// It returns io.EOF once input is exhausted.
func (p *Prompt) ReadLine(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
