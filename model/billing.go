package model

// BillingAccount is the subset of Cloud Billing account data the
// selection heuristic operates on.
type BillingAccount struct {
	Name        string // resource name, e.g. billingAccounts/0X0X0X-0X0X0X-0X0X0X
	DisplayName string
	Open        bool

	// LinkedProjects is the number of projects linked to the account,
	// capped at 1 because the heuristic only cares about zero vs nonzero.
	// -1 means the check failed and the count is unknown.
	LinkedProjects int
}

// BillingStatus describes a project's current billing link.
type BillingStatus struct {
	Enabled     bool
	AccountName string
}
