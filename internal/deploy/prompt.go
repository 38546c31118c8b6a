package deploy

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

type Prompter interface {
	Password(prompt string) (string, error)
}

// TermPrompter reads passwords from a terminal with echo disabled.
type TermPrompter struct {
	In  *os.File
	Out io.Writer
}

func (p TermPrompter) Password(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	password, err := term.ReadPassword(int(p.In.Fd()))
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}
