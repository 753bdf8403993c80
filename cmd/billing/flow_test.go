package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/labops/labctl/model"
	"github.com/labops/labctl/service/billing"
)

type listResult struct {
	accounts []model.BillingAccount
	err      error
}

type fakeBilling struct {
	status    model.BillingStatus
	statusErr error
	lists     []listResult
	linkErrs  []error
	verifyErr error
	tagErr    error

	linked []model.BillingAccount
	tagged []model.BillingAccount
}

func (f *fakeBilling) ProjectBillingStatus(ctx context.Context, projectID string) (model.BillingStatus, error) {
	return f.status, f.statusErr
}

func (f *fakeBilling) ListOpenAccounts(ctx context.Context) ([]model.BillingAccount, error) {
	if len(f.lists) == 0 {
		return nil, nil
	}
	result := f.lists[0]
	if len(f.lists) > 1 {
		f.lists = f.lists[1:]
	}
	return result.accounts, result.err
}

func (f *fakeBilling) LinkProject(ctx context.Context, projectID string, account model.BillingAccount) error {
	f.linked = append(f.linked, account)
	if len(f.linkErrs) == 0 {
		return nil
	}
	err := f.linkErrs[0]
	f.linkErrs = f.linkErrs[1:]
	return err
}

func (f *fakeBilling) VerifyLink(ctx context.Context, projectID string, account model.BillingAccount) error {
	return f.verifyErr
}

func (f *fakeBilling) TagAccount(ctx context.Context, account model.BillingAccount) error {
	f.tagged = append(f.tagged, account)
	return f.tagErr
}

type fakeGcloud struct {
	enabled   []string
	enableErr error
}

func (f *fakeGcloud) ActiveAccount(ctx context.Context) (string, error)  { return "", nil }
func (f *fakeGcloud) ActiveProject(ctx context.Context) (string, error) { return "", nil }
func (f *fakeGcloud) ListProjects(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}
func (f *fakeGcloud) CreateProject(ctx context.Context, projectID string) error { return nil }
func (f *fakeGcloud) SetProject(ctx context.Context, projectID string) error    { return nil }
func (f *fakeGcloud) EnableService(ctx context.Context, projectID, serviceName string) error {
	f.enabled = append(f.enabled, serviceName)
	return f.enableErr
}

type fakePrompt struct {
	choice int
}

func (f *fakePrompt) Confirm(label string) (bool, error)        { return false, nil }
func (f *fakePrompt) Ask(label string) (string, error)          { return "", nil }
func (f *fakePrompt) Choose(label string, max int) (int, error) { return f.choice, nil }

func account(name, display string, linked int) model.BillingAccount {
	return model.BillingAccount{Name: name, DisplayName: display, Open: true, LinkedProjects: linked}
}

func newTestFlow(b *fakeBilling, gc *fakeGcloud, pr *fakePrompt) *flow {
	f := newFlow("gcp-lab-abc123", b, gc, pr)
	f.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	f.apiEnableDelay = time.Millisecond
	f.creditWaitInterval = time.Millisecond
	return f
}

func apiDisabledErr() error {
	return &googleapi.Error{
		Code:    403,
		Message: "Cloud Billing API has not been used in project 123 before or it is disabled.",
	}
}

func TestRunSkipsWhenBillingAlreadyEnabled(t *testing.T) {
	b := &fakeBilling{status: model.BillingStatus{Enabled: true, AccountName: "billingAccounts/AAA"}}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})

	require.NoError(t, f.run(context.Background()))
	assert.Empty(t, b.linked)
}

func TestRunLinksSingleAccount(t *testing.T) {
	acct := account("billingAccounts/AAA", "My Billing Account", 0)
	b := &fakeBilling{lists: []listResult{{accounts: []model.BillingAccount{acct}}}}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})

	require.NoError(t, f.run(context.Background()))
	require.Len(t, b.linked, 1)
	assert.Equal(t, acct.Name, b.linked[0].Name)
	require.Len(t, b.tagged, 1)
}

func TestRunPrefersUnlinkedTrialAccount(t *testing.T) {
	used := account("billingAccounts/AAA", "Old Account-202501010900", 1)
	trial := account("billingAccounts/BBB", "My Trial Billing Account", 0)
	b := &fakeBilling{lists: []listResult{{accounts: []model.BillingAccount{used, trial}}}}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})

	require.NoError(t, f.run(context.Background()))
	require.Len(t, b.linked, 1)
	assert.Equal(t, trial.Name, b.linked[0].Name)
}

func TestRunEnablesBillingAPIAndRetries(t *testing.T) {
	acct := account("billingAccounts/AAA", "My Billing Account", 0)
	b := &fakeBilling{lists: []listResult{
		{err: apiDisabledErr()},
		{err: apiDisabledErr()},
		{accounts: []model.BillingAccount{acct}},
	}}
	gc := &fakeGcloud{}
	f := newTestFlow(b, gc, &fakePrompt{})

	require.NoError(t, f.run(context.Background()))
	assert.Equal(t, []string{billingAPI}, gc.enabled)
	require.Len(t, b.linked, 1)
}

func TestRunGivesUpWhenAPIStaysDisabled(t *testing.T) {
	b := &fakeBilling{lists: []listResult{{err: apiDisabledErr()}}}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})
	f.apiEnableAttempts = 2

	err := f.run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "still not serving")
}

func TestRunReportsPermissionDenied(t *testing.T) {
	b := &fakeBilling{lists: []listResult{{err: &googleapi.Error{Code: 403, Message: "The caller does not have permission"}}}}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})

	err := f.run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Billing Account Viewer")
}

func TestRunWaitsForRedeemedCredits(t *testing.T) {
	acct := account("billingAccounts/AAA", "My Trial Billing Account", 0)
	b := &fakeBilling{lists: []listResult{
		{},
		{},
		{accounts: []model.BillingAccount{acct}},
	}}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})

	require.NoError(t, f.run(context.Background()))
	require.Len(t, b.linked, 1)
}

func TestRunFailsWhenNoAccountEverAppears(t *testing.T) {
	b := &fakeBilling{lists: []listResult{{}}}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})
	f.creditWaitAttempts = 2

	err := f.run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no open billing accounts")
}

func TestRunFallsBackToManualSelection(t *testing.T) {
	first := account("billingAccounts/AAA", "Account A", 0)
	second := account("billingAccounts/BBB", "Account B", 0)
	b := &fakeBilling{
		lists:    []listResult{{accounts: []model.BillingAccount{first, second}}},
		linkErrs: []error{errors.New("link rejected")},
	}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{choice: 2})

	require.NoError(t, f.run(context.Background()))
	require.Len(t, b.linked, 2)
	assert.Equal(t, second.Name, b.linked[1].Name)
}

func TestRunNonInteractiveFailsOnLinkError(t *testing.T) {
	acct := account("billingAccounts/AAA", "Account A", 0)
	b := &fakeBilling{
		lists:    []listResult{{accounts: []model.BillingAccount{acct}}},
		linkErrs: []error{errors.New("link rejected")},
	}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})
	f.interactive = false

	err := f.run(context.Background())

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "manual selection is disabled"))
}

func TestRunTreatsUnverifiedLinkAsWarning(t *testing.T) {
	acct := account("billingAccounts/AAA", "Account A", 0)
	b := &fakeBilling{
		lists:     []listResult{{accounts: []model.BillingAccount{acct}}},
		verifyErr: billing.ErrLinkUnverified,
	}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})

	require.NoError(t, f.run(context.Background()))
	require.Len(t, b.tagged, 1)
}

func TestRunIgnoresTagFailure(t *testing.T) {
	acct := account("billingAccounts/AAA", "Account A", 0)
	b := &fakeBilling{
		lists:  []listResult{{accounts: []model.BillingAccount{acct}}},
		tagErr: &googleapi.Error{Code: 403, Message: "The caller does not have permission"},
	}
	f := newTestFlow(b, &fakeGcloud{}, &fakePrompt{})

	require.NoError(t, f.run(context.Background()))
}
