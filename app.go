package main

import (
	"context"
	"os"

	"github.com/labops/labctl/service/auth"
	"github.com/labops/labctl/service/flag"
	"github.com/labops/labctl/service/gcloud"
	"github.com/labops/labctl/service/projectid"
	"github.com/labops/labctl/service/prompt"
	"github.com/labops/labctl/service/setup"
	"github.com/labops/labctl/service/statefile"
	"github.com/labops/labctl/utils"
)

func main() {
	utils.DrawBanner("labctl")

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		utils.Errorf("%v", err)
		os.Exit(1)
	}

	statePath := flags.StateFile
	if statePath == "" {
		statePath, err = statefile.DefaultPath()
		if err != nil {
			utils.Errorf("%v", err)
			os.Exit(1)
		}
	}

	setupService := setup.NewService(
		flags,
		gcloud.NewService(),
		projectid.NewService(),
		statefile.NewService(statePath),
		prompt.NewService(os.Stdin, os.Stdout),
		auth.NewService(),
	)

	project, err := setupService.Run(context.Background())
	if err != nil {
		utils.Errorf("Setup failed: %v", err)
		os.Exit(1)
	}

	utils.Successf("Lab environment ready in project %s", project.ID)
}
