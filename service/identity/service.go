package identity

import (
	"context"

	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"
)

func NewService(ctx context.Context) (*service, error) {
	client, err := cloudresourcemanager.NewService(ctx, option.WithScopes(
		cloudresourcemanager.CloudPlatformReadOnlyScope,
	))
	if err != nil {
		return nil, err
	}

	return &service{client: client}, nil
}

// GetProject implements IdentityService.
func (s *service) GetProject(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error) {
	return s.client.Projects.Get(projectID).Context(ctx).Do()
}
