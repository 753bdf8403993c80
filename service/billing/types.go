package billing

import (
	"context"
	"time"

	"github.com/labops/labctl/model"
	"google.golang.org/api/cloudbilling/v1"
)

type service struct {
	client *cloudbilling.APIService
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

type BillingService interface {
	ProjectBillingStatus(ctx context.Context, projectID string) (model.BillingStatus, error)
	ListOpenAccounts(ctx context.Context) ([]model.BillingAccount, error)
	LinkProject(ctx context.Context, projectID string, account model.BillingAccount) error
	VerifyLink(ctx context.Context, projectID string, account model.BillingAccount) error
	TagAccount(ctx context.Context, account model.BillingAccount) error
}
