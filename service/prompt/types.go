package prompt

import (
	"bufio"
	"io"
)

type service struct {
	in  *bufio.Reader
	out io.Writer
}

type PromptService interface {
	Confirm(label string) (bool, error)
	Ask(label string) (string, error)
	Choose(label string, max int) (int, error)
}
