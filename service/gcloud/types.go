package gcloud

import "context"

// runnerFunc executes a command and returns its combined stdout. Injected so
// tests never shell out to the real binary.
type runnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type service struct {
	bin string
	run runnerFunc
}

type CommandService interface {
	ActiveAccount(ctx context.Context) (string, error)
	ActiveProject(ctx context.Context) (string, error)
	ListProjects(ctx context.Context, prefix string) ([]string, error)
	CreateProject(ctx context.Context, projectID string) error
	SetProject(ctx context.Context, projectID string) error
	EnableService(ctx context.Context, projectID, serviceName string) error
}
