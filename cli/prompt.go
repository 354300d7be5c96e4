package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrNoInput is returned when a prompt hits the end of input.
var ErrNoInput = errors.New("no input")

// Prompter asks questions on the terminal, or reads answers line by line when stdin is piped.
type Prompter struct {
	in          *bufio.Reader
	file        *os.File
	out         io.Writer
	interactive bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.file = f
		p.interactive = true
	}
	return p
}

// Interactive reports whether stdin is a terminal.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Ask prints question and returns the trimmed answer.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", errors.Wrap(err, "[Prompter.Ask] read")
	}
	return strings.TrimSpace(line), nil
}

// AskSecret reads an answer without echo on a terminal.
func (p *Prompter) AskSecret(question string) (string, error) {
	if !p.interactive {
		return p.Ask(question)
	}
	fmt.Fprint(p.out, question)
	secret, err := term.ReadPassword(int(p.file.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", errors.Wrap(err, "[Prompter.AskSecret] read")
	}
	return strings.TrimSpace(string(secret)), nil
}

// Confirm asks a yes/no question. An empty answer gives defaultYes.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := " [y/N] "
	if defaultYes {
		hint = " [Y/n] "
	}
	answer, err := p.Ask(question + hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
