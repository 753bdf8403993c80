package flag

import (
	"flag"
	"fmt"

	"github.com/labops/labctl/model"
)

type service struct{}

func NewService() *service {
	return &service{}
}

func (s *service) GetParsedFlags() (model.Flags, error) {
	day := flag.Int("day", 1, "workshop day (1 or 2); selects creation retry and helper staging policy")
	prefix := flag.String("prefix", "gcp-lab", "prefix for generated lab project IDs")
	stateFile := flag.String("state-file", "", "path of the project ID file (default ~/project_id.txt)")
	fresh := flag.Bool("fresh", false, "remove prior lab state before starting")
	nonInteractive := flag.Bool("non-interactive", false, "never prompt; decline reuse and disable manual fallbacks")
	skipBilling := flag.Bool("skip-billing", false, "skip the billing enablement helper")
	attempts := flag.Int("create-attempts", 5, "project creation attempts before the manual fallback (day 1)")

	flag.Parse()

	flags := model.Flags{
		Day:            *day,
		ProjectPrefix:  *prefix,
		StateFile:      *stateFile,
		Fresh:          *fresh,
		NonInteractive: *nonInteractive,
		SkipBilling:    *skipBilling,
		CreateAttempts: *attempts,
	}

	if flags.Day != 1 && flags.Day != 2 {
		return model.Flags{}, fmt.Errorf("invalid -day %d: this workshop has days 1 and 2", flags.Day)
	}
	if flags.CreateAttempts < 1 {
		return model.Flags{}, fmt.Errorf("invalid -create-attempts %d: must be at least 1", flags.CreateAttempts)
	}

	return flags, nil
}
