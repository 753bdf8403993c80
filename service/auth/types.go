package auth

import (
	"context"

	"golang.org/x/oauth2/google"
)

type service struct{}

type ConfigService interface {
	Credentials(ctx context.Context) (*google.Credentials, error)
}
