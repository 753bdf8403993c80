package setup

import (
	"context"

	"github.com/labops/labctl/model"
	"github.com/labops/labctl/service/auth"
	"github.com/labops/labctl/service/gcloud"
	"github.com/labops/labctl/service/projectid"
	"github.com/labops/labctl/service/prompt"
	"github.com/labops/labctl/service/statefile"
)

type service struct {
	flags  model.Flags
	gcloud gcloud.CommandService
	ids    projectid.GeneratorService
	state  statefile.StateService
	prompt prompt.PromptService
	config auth.ConfigService

	// replaced in tests so no subprocess runs
	locateHelper func(name string) (string, error)
	runHelper    func(ctx context.Context, path string) error
}

type SetupService interface {
	Run(ctx context.Context) (*model.Project, error)
}
