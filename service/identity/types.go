package identity

import (
	"context"

	"google.golang.org/api/cloudresourcemanager/v1"
)

type service struct {
	client *cloudresourcemanager.Service
}

type IdentityService interface {
	GetProject(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error)
}
