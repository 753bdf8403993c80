package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func NewService(in io.Reader, out io.Writer) *service {
	return &service{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks a yes/no question. Empty input defaults to no, so a student
// mashing Enter never reuses or destroys anything by accident.
func (s *service) Confirm(label string) (bool, error) {
	fmt.Fprintf(s.out, "%s [y/N]: ", label)
	line, err := s.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Ask reads a single free-text answer.
func (s *service) Ask(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	return s.readLine()
}

// Choose reads a 1-based selection, re-prompting until the answer is a number
// within [1, max].
func (s *service) Choose(label string, max int) (int, error) {
	for {
		fmt.Fprintf(s.out, "%s [1-%d]: ", label, max)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > max {
			fmt.Fprintf(s.out, "Please enter a number between 1 and %d\n", max)
			continue
		}
		return n, nil
	}
}

func (s *service) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
