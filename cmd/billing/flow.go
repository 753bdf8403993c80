package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labops/labctl/model"
	"github.com/labops/labctl/service/billing"
	"github.com/labops/labctl/service/gcloud"
	"github.com/labops/labctl/service/prompt"
	"github.com/labops/labctl/utils"
)

const billingAPI = "cloudbilling.googleapis.com"

// flow links the lab project to the best available billing account. The
// retry knobs are fields so tests can shrink the waits.
type flow struct {
	projectID   string
	billing     billing.BillingService
	gcloud      gcloud.CommandService
	prompt      prompt.PromptService
	interactive bool

	sleep func(ctx context.Context, d time.Duration) error

	apiEnableAttempts  int
	apiEnableDelay     time.Duration
	creditWaitAttempts int
	creditWaitInterval time.Duration
}

func newFlow(projectID string, billingService billing.BillingService, gcloudService gcloud.CommandService, promptService prompt.PromptService) *flow {
	return &flow{
		projectID:   projectID,
		billing:     billingService,
		gcloud:      gcloudService,
		prompt:      promptService,
		interactive: true,

		sleep: sleepContext,

		apiEnableAttempts:  5,
		apiEnableDelay:     15 * time.Second,
		creditWaitAttempts: 6,
		creditWaitInterval: 20 * time.Second,
	}
}

func (f *flow) run(ctx context.Context) error {
	status, err := f.billing.ProjectBillingStatus(ctx, f.projectID)
	if err == nil && status.Enabled {
		utils.Successf("Billing already enabled on %s (%s)", f.projectID, status.AccountName)
		return nil
	}

	accounts, err := f.listAccounts(ctx)
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		accounts, err = f.waitForCredits(ctx)
		if err != nil {
			return err
		}
	}

	account := f.chooseAccount(accounts)
	utils.Infof("Linking %s to %s", f.projectID, account.DisplayName)

	if err := f.billing.LinkProject(ctx, f.projectID, account); err != nil {
		utils.Warningf("Automatic linking failed: %v", err)
		account, err = f.manualLink(ctx, accounts)
		if err != nil {
			return err
		}
	}

	if err := f.billing.VerifyLink(ctx, f.projectID, account); err != nil {
		if !errors.Is(err, billing.ErrLinkUnverified) {
			return err
		}
		utils.Warningf("Billing link accepted but not yet reported active; it usually propagates within a few minutes")
	} else {
		utils.Successf("Billing enabled on %s via %s", f.projectID, account.DisplayName)
	}

	if err := f.billing.TagAccount(ctx, account); err != nil {
		// Tagging only helps future runs pick accounts; students often lack
		// billing.accounts.update and that must not fail the workshop.
		utils.Warningf("Could not tag billing account: %v", err)
	}

	return nil
}

// listAccounts retries around the race where the Cloud Billing API was just
// enabled on the project but is not serving yet.
func (f *flow) listAccounts(ctx context.Context) ([]model.BillingAccount, error) {
	delay := f.apiEnableDelay
	enabledAPI := false

	for attempt := 1; ; attempt++ {
		accounts, err := f.billing.ListOpenAccounts(ctx)
		if err == nil {
			return accounts, nil
		}

		if billing.IsAPIDisabled(err) {
			if !enabledAPI {
				utils.Infof("Cloud Billing API is disabled on %s; enabling it", f.projectID)
				if enableErr := f.gcloud.EnableService(ctx, f.projectID, billingAPI); enableErr != nil {
					return nil, fmt.Errorf("failed to enable %s: %w", billingAPI, enableErr)
				}
				enabledAPI = true
			}
			if attempt >= f.apiEnableAttempts {
				return nil, fmt.Errorf("%s still not serving after %d attempts: %w", billingAPI, attempt, err)
			}
			utils.Infof("Waiting %s for %s to start serving", delay, billingAPI)
			if sleepErr := f.sleep(ctx, delay); sleepErr != nil {
				return nil, sleepErr
			}
			delay = delay * 3 / 2
			continue
		}

		if billing.IsPermissionDenied(err) {
			return nil, fmt.Errorf("no permission to list billing accounts; ask the instructor to grant Billing Account Viewer: %w", err)
		}
		return nil, err
	}
}

// waitForCredits polls for a billing account to appear, which happens after
// the student redeems their credit coupon in another tab.
func (f *flow) waitForCredits(ctx context.Context) ([]model.BillingAccount, error) {
	utils.StartSpinner("Waiting for a billing account (redeem your credits now)")
	defer utils.StopSpinner()

	for attempt := 0; attempt < f.creditWaitAttempts; attempt++ {
		if err := f.sleep(ctx, f.creditWaitInterval); err != nil {
			return nil, err
		}
		accounts, err := f.billing.ListOpenAccounts(ctx)
		if err != nil {
			return nil, err
		}
		if len(accounts) > 0 {
			return accounts, nil
		}
	}

	utils.StopSpinner()
	utils.DrawPanel("ACTION REQUIRED",
		"No open billing account was found for your user.",
		"Redeem your workshop credit coupon at https://console.cloud.google.com/billing,",
		"then run billing-enablement again.",
	)
	return nil, errors.New("no open billing accounts available")
}

func (f *flow) chooseAccount(accounts []model.BillingAccount) model.BillingAccount {
	if len(accounts) == 1 {
		return accounts[0]
	}
	utils.DrawAccountsTable(accounts)
	return billing.SelectBestAccount(accounts)
}

// manualLink lets the student pick an account by number when the automatic
// link was rejected, e.g. because the heuristic chose an account they cannot
// use.
func (f *flow) manualLink(ctx context.Context, accounts []model.BillingAccount) (model.BillingAccount, error) {
	if !f.interactive {
		return model.BillingAccount{}, errors.New("automatic billing link failed and manual selection is disabled")
	}

	utils.DrawAccountsTable(accounts)
	choice, err := f.prompt.Choose("Pick a billing account to link", len(accounts))
	if err != nil {
		return model.BillingAccount{}, err
	}

	account := accounts[choice-1]
	if err := f.billing.LinkProject(ctx, f.projectID, account); err != nil {
		return model.BillingAccount{}, err
	}
	return account, nil
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
