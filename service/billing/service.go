package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labops/labctl/model"
	"google.golang.org/api/cloudbilling/v1"
)

const (
	verifyAttempts = 6
	verifyInterval = 10 * time.Second
)

// ErrLinkUnverified means the link request was accepted but the project did
// not report billing as active within the verification window. Callers treat
// this as a propagation warning, not a failure.
var ErrLinkUnverified = errors.New("billing link not verified as active")

func NewService(ctx context.Context) (*service, error) {
	client, err := cloudbilling.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Billing client: %w", err)
	}

	return &service{
		client: client,
		now:    time.Now,
		sleep:  sleepContext,
	}, nil
}

// ProjectBillingStatus implements BillingService. A project with no billing
// info at all reports as not enabled rather than as an error.
func (s *service) ProjectBillingStatus(ctx context.Context, projectID string) (model.BillingStatus, error) {
	info, err := s.client.Projects.GetBillingInfo("projects/" + projectID).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return model.BillingStatus{}, nil
		}
		return model.BillingStatus{}, fmt.Errorf("failed to get billing info for %s: %w", projectID, err)
	}

	return model.BillingStatus{
		Enabled:     info.BillingEnabled,
		AccountName: info.BillingAccountName,
	}, nil
}

// ListOpenAccounts implements BillingService. Closed accounts are dropped;
// each open account carries its linked-project count for the selection
// heuristic.
func (s *service) ListOpenAccounts(ctx context.Context) ([]model.BillingAccount, error) {
	var accounts []model.BillingAccount
	err := s.client.BillingAccounts.List().Pages(ctx, func(resp *cloudbilling.ListBillingAccountsResponse) error {
		for _, acct := range resp.BillingAccounts {
			if !acct.Open {
				continue
			}
			accounts = append(accounts, model.BillingAccount{
				Name:           acct.Name,
				DisplayName:    acct.DisplayName,
				Open:           true,
				LinkedProjects: s.linkedProjectCount(ctx, acct.Name),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list billing accounts: %w", err)
	}
	return accounts, nil
}

// linkedProjectCount only distinguishes zero from nonzero, so one page of
// size one is enough. -1 means unknown; the heuristic does not penalize it.
func (s *service) linkedProjectCount(ctx context.Context, accountName string) int {
	resp, err := s.client.BillingAccounts.Projects.List(accountName).PageSize(1).Context(ctx).Do()
	if err != nil {
		return -1
	}
	if len(resp.ProjectBillingInfo) == 0 {
		return 0
	}
	return 1
}

// LinkProject implements BillingService.
func (s *service) LinkProject(ctx context.Context, projectID string, account model.BillingAccount) error {
	_, err := s.client.Projects.UpdateBillingInfo("projects/"+projectID, &cloudbilling.ProjectBillingInfo{
		BillingAccountName: account.Name,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to link %s to %s: %w", projectID, account.DisplayName, err)
	}
	return nil
}

// VerifyLink implements BillingService. The link can take a few seconds to
// propagate, so the status is polled before giving up with ErrLinkUnverified.
func (s *service) VerifyLink(ctx context.Context, projectID string, account model.BillingAccount) error {
	for attempt := 0; attempt < verifyAttempts; attempt++ {
		status, err := s.ProjectBillingStatus(ctx, projectID)
		if err == nil && status.Enabled && status.AccountName == account.Name {
			return nil
		}
		if attempt < verifyAttempts-1 {
			if err := s.sleep(ctx, verifyInterval); err != nil {
				return err
			}
		}
	}
	return ErrLinkUnverified
}

// TagAccount implements BillingService. It appends a date suffix to the
// account display name so later runs can identify accounts this tool already
// used. Already-tagged accounts are left alone.
func (s *service) TagAccount(ctx context.Context, account model.BillingAccount) error {
	tagged, changed := tagDisplayName(account.DisplayName, s.now())
	if !changed {
		return nil
	}

	_, err := s.client.BillingAccounts.Patch(account.Name, &cloudbilling.BillingAccount{
		DisplayName: tagged,
	}).UpdateMask("display_name").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to tag billing account %s: %w", account.Name, err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
