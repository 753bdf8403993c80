package model

// Project is the lab project selected or created during setup.
type Project struct {
	ID     string
	Reused bool
}
