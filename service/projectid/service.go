package projectid

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
)

const (
	// Google Cloud project ID rules: 6-30 characters, lowercase letters,
	// digits and hyphens, starting with a letter, not ending with a hyphen.
	MinLength = 6
	MaxLength = 30

	suffixAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	defaultSuffixLen = 6
	minSuffixLen     = 4
)

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

func NewService() *service {
	return &service{entropy: rand.Reader}
}

// NewServiceWithEntropy allows tests to inject a deterministic entropy source.
func NewServiceWithEntropy(entropy io.Reader) *service {
	return &service{entropy: entropy}
}

// Generate implements GeneratorService. It produces "<prefix>-<suffix>" with a
// random lowercase alphanumeric suffix sized so the whole ID stays within the
// provider's length limit.
func (s *service) Generate(prefix string) (string, error) {
	if err := validatePrefix(prefix); err != nil {
		return "", err
	}

	suffixLen := MaxLength - len(prefix) - 1
	if suffixLen > defaultSuffixLen {
		suffixLen = defaultSuffixLen
	}
	if suffixLen < minSuffixLen {
		return "", fmt.Errorf("prefix %q leaves no room for a %d character suffix", prefix, minSuffixLen)
	}

	buf := make([]byte, suffixLen)
	if _, err := io.ReadFull(s.entropy, buf); err != nil {
		return "", fmt.Errorf("failed to read entropy: %w", err)
	}
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}

	id := prefix + "-" + string(buf)
	if err := s.Validate(id); err != nil {
		return "", fmt.Errorf("generated ID %q is invalid: %w", id, err)
	}
	return id, nil
}

// Validate implements GeneratorService.
func (s *service) Validate(id string) error {
	if len(id) < MinLength || len(id) > MaxLength {
		return fmt.Errorf("project ID %q must be between %d and %d characters", id, MinLength, MaxLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("project ID %q must start with a lowercase letter and contain only lowercase letters, digits and hyphens", id)
	}
	return nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("project prefix must not be empty")
	}
	if prefix[0] < 'a' || prefix[0] > 'z' {
		return fmt.Errorf("project prefix %q must start with a lowercase letter", prefix)
	}
	for _, r := range prefix {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("project prefix %q contains invalid character %q", prefix, r)
		}
	}
	return nil
}
