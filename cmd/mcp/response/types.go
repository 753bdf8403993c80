package response

// LabState describes what labctl has set up so far on this machine
type LabState struct {
	Initialized bool   `json:"initialized"`
	ProjectID   string `json:"project_id,omitempty"`
	StateFile   string `json:"state_file"`
}

// ProjectInfo is the project identity as reported by Cloud Resource Manager
type ProjectInfo struct {
	ProjectID      string            `json:"project_id"`
	Name           string            `json:"name"`
	Number         int64             `json:"number"`
	LifecycleState string            `json:"lifecycle_state"`
	CreateTime     string            `json:"create_time,omitempty"`
	Labels         map[string]string `json:"labels,omitempty"`
}

// BillingStatus reports whether billing is active on the lab project
type BillingStatus struct {
	ProjectID      string `json:"project_id"`
	BillingEnabled bool   `json:"billing_enabled"`
	BillingAccount string `json:"billing_account,omitempty"`
}

// ProjectList holds the lab projects visible to the active credentials
type ProjectList struct {
	Prefix   string   `json:"prefix"`
	Projects []string `json:"projects"`
}
