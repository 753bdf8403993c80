package statefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is where downstream lab scripts expect the project ID.
const DefaultFileName = "project_id.txt"

var (
	ErrNotInitialized = errors.New("project ID file does not exist")
	ErrEmpty          = errors.New("project ID file is empty")
)

func NewService(path string) *service {
	return &service{path: path}
}

// DefaultPath returns ~/project_id.txt, the fixed location shared with the
// rest of the workshop material.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Path implements StateService.
func (s *service) Path() string {
	return s.path
}

// Write implements StateService. The file always contains exactly the last
// selected project ID, overwriting any previous content.
func (s *service) Write(projectID string) error {
	if err := os.WriteFile(s.path, []byte(projectID+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write project ID file: %w", err)
	}
	return nil
}

// Read implements StateService.
func (s *service) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotInitialized
		}
		return "", fmt.Errorf("failed to read project ID file: %w", err)
	}

	projectID := strings.TrimSpace(string(data))
	if projectID == "" {
		return "", ErrEmpty
	}
	return projectID, nil
}

// Clean implements StateService. It removes the state file and any temp
// leftovers from an interrupted prior run.
func (s *service) Clean() error {
	for _, path := range []string{s.path, s.path + ".tmp"} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}
