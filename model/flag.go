package model

// Flags holds the parsed command line options for the setup binary.
type Flags struct {
	// Day selects the workshop day variant. Day one uses bounded project
	// creation retries with a manual fallback and treats a missing billing
	// helper as fatal; day two retries creation until the deadline and
	// stages the helper best-effort.
	Day int

	ProjectPrefix  string
	StateFile      string
	Fresh          bool
	NonInteractive bool
	SkipBilling    bool
	CreateAttempts int
}
