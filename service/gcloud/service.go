package gcloud

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the provider CLI every network-facing setup step is
// delegated to.
const DefaultBinary = "gcloud"

var ErrNotFound = errors.New("gcloud command not found; install the Google Cloud SDK and re-run")

func NewService() *service {
	return &service{
		bin: DefaultBinary,
		run: defaultRunner,
	}
}

// NewServiceWithRunner allows tests to inject a fake command runner.
func NewServiceWithRunner(run runnerFunc) *service {
	return &service{
		bin: DefaultBinary,
		run: run,
	}
}

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}

func (s *service) exec(ctx context.Context, args ...string) (string, error) {
	out, err := s.run(ctx, s.bin, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("gcloud %s: %w", args[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ActiveAccount implements CommandService. It returns the currently active
// gcloud account, or an empty string when nobody is logged in.
func (s *service) ActiveAccount(ctx context.Context) (string, error) {
	out, err := s.exec(ctx, "auth", "list", "--filter=status:ACTIVE", "--format=value(account)")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(out, "\n") {
		if account := strings.TrimSpace(line); account != "" {
			return account, nil
		}
	}
	return "", nil
}

// ActiveProject implements CommandService. An unset project comes back as an
// empty string; gcloud prints "(unset)" on some channels.
func (s *service) ActiveProject(ctx context.Context) (string, error) {
	out, err := s.exec(ctx, "config", "get-value", "project")
	if err != nil {
		return "", err
	}
	if out == "(unset)" {
		return "", nil
	}
	return out, nil
}

// ListProjects implements CommandService. Results are limited to project IDs
// starting with the lab prefix, one per line.
func (s *service) ListProjects(ctx context.Context, prefix string) ([]string, error) {
	out, err := s.exec(ctx,
		"projects", "list",
		fmt.Sprintf("--filter=projectId:%s*", prefix),
		"--format=value(projectId)",
	)
	if err != nil {
		return nil, err
	}

	var projects []string
	for _, line := range strings.Split(out, "\n") {
		if id := strings.TrimSpace(line); id != "" {
			projects = append(projects, id)
		}
	}
	return projects, nil
}

// CreateProject implements CommandService.
func (s *service) CreateProject(ctx context.Context, projectID string) error {
	_, err := s.exec(ctx, "projects", "create", projectID, "--quiet")
	return err
}

// SetProject implements CommandService.
func (s *service) SetProject(ctx context.Context, projectID string) error {
	_, err := s.exec(ctx, "config", "set", "project", projectID, "--quiet")
	return err
}

// EnableService implements CommandService.
func (s *service) EnableService(ctx context.Context, projectID, serviceName string) error {
	_, err := s.exec(ctx, "services", "enable", serviceName, "--project", projectID, "--quiet")
	return err
}
