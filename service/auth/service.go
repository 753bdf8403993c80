package auth

import (
	"context"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudbilling/v1"
	"google.golang.org/api/cloudresourcemanager/v1"
)

func NewService() *service {
	return &service{}
}

// Credentials probes Application Default Credentials with the scopes the
// billing helper will need later.
// This supports:
// - GOOGLE_APPLICATION_CREDENTIALS environment variable
// - gcloud auth application-default login
// - Service account on GCE/Cloud Run/Cloud Functions
func (s *service) Credentials(ctx context.Context) (*google.Credentials, error) {
	return google.FindDefaultCredentials(ctx,
		cloudbilling.CloudBillingScope,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
	)
}
