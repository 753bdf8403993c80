package main

import (
	"context"
	"flag"
	"os"

	"github.com/labops/labctl/service/billing"
	"github.com/labops/labctl/service/gcloud"
	"github.com/labops/labctl/service/prompt"
	"github.com/labops/labctl/service/statefile"
	"github.com/labops/labctl/utils"
)

func main() {
	statePath := flag.String("state-file", "", "path of the project ID file (default ~/project_id.txt)")
	nonInteractive := flag.Bool("non-interactive", false, "never prompt; fail instead of offering manual account selection")
	flag.Parse()

	path := *statePath
	if path == "" {
		var err error
		path, err = statefile.DefaultPath()
		if err != nil {
			utils.Errorf("%v", err)
			os.Exit(1)
		}
	}

	projectID, err := statefile.NewService(path).Read()
	if err != nil {
		utils.Errorf("Cannot determine the lab project: %v", err)
		utils.Errorf("Run labctl first so %s exists", path)
		os.Exit(1)
	}

	ctx := context.Background()
	billingService, err := billing.NewService(ctx)
	if err != nil {
		utils.Errorf("%v", err)
		os.Exit(1)
	}

	f := newFlow(projectID, billingService, gcloud.NewService(), prompt.NewService(os.Stdin, os.Stdout))
	f.interactive = !*nonInteractive

	if err := f.run(ctx); err != nil {
		utils.Errorf("%v", err)
		os.Exit(1)
	}
}
