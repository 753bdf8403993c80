package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/labops/labctl/model"
	"github.com/labops/labctl/service/auth"
	"github.com/labops/labctl/service/gcloud"
	"github.com/labops/labctl/service/projectid"
	"github.com/labops/labctl/service/prompt"
	"github.com/labops/labctl/service/statefile"
	"github.com/labops/labctl/utils"
)

// HelperBinary links the selected project to a billing account. Its exit code
// gates overall setup success.
const HelperBinary = "billing-enablement"

var (
	ErrNotAuthenticated = errors.New("no active gcloud account; run 'gcloud auth login' and 'gcloud auth application-default login'")
	ErrCreateExhausted  = errors.New("gave up creating a lab project")
)

func NewService(
	flags model.Flags,
	gcloudSvc gcloud.CommandService,
	ids projectid.GeneratorService,
	state statefile.StateService,
	promptSvc prompt.PromptService,
	config auth.ConfigService,
) *service {
	return &service{
		flags:        flags,
		gcloud:       gcloudSvc,
		ids:          ids,
		state:        state,
		prompt:       promptSvc,
		config:       config,
		locateHelper: locateHelper,
		runHelper:    runHelper,
	}
}

// Run implements SetupService. The workflow is strictly sequential: cleanup,
// auth check, project find-or-create, persist, billing delegation. Any
// gating failure surfaces as an error and nothing later runs.
func (s *service) Run(ctx context.Context) (*model.Project, error) {
	if s.flags.Fresh {
		if err := s.state.Clean(); err != nil {
			return nil, fmt.Errorf("failed to clean prior lab state: %w", err)
		}
		utils.Infof("Removed prior lab state")
	}

	if err := s.checkAuth(ctx); err != nil {
		return nil, err
	}

	project, err := s.selectProject(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.gcloud.SetProject(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("failed to set active project: %w", err)
	}

	if err := s.state.Write(project.ID); err != nil {
		return nil, err
	}
	utils.Successf("Project ID %s saved to %s", project.ID, s.state.Path())

	if s.flags.SkipBilling {
		utils.Warningf("Skipping billing enablement (-skip-billing)")
		return project, nil
	}

	if err := s.delegateBilling(ctx); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *service) checkAuth(ctx context.Context) error {
	account, err := s.gcloud.ActiveAccount(ctx)
	if err != nil {
		return err
	}
	if account == "" {
		return ErrNotAuthenticated
	}
	utils.Infof("Authenticated as %s", account)

	// The billing helper talks to the Cloud Billing API directly and needs
	// application default credentials, not just CLI auth. Failing here gives
	// the student one actionable error instead of two.
	if _, err := s.config.Credentials(ctx); err != nil {
		return fmt.Errorf("%w (application default credentials: %v)", ErrNotAuthenticated, err)
	}
	return nil
}

func (s *service) selectProject(ctx context.Context) (*model.Project, error) {
	candidate, err := s.findCandidate(ctx)
	if err != nil {
		return nil, err
	}

	if candidate != "" && !s.flags.NonInteractive {
		reuse, err := s.prompt.Confirm(fmt.Sprintf("Found existing lab project %s. Reuse it?", candidate))
		if err != nil {
			return nil, err
		}
		if reuse {
			utils.Infof("Reusing project %s", candidate)
			return &model.Project{ID: candidate, Reused: true}, nil
		}
	}

	return s.createProject(ctx)
}

// findCandidate looks for a prior lab project: the active gcloud project if
// it matches the lab prefix, otherwise the first listed project with that
// prefix.
func (s *service) findCandidate(ctx context.Context) (string, error) {
	active, err := s.gcloud.ActiveProject(ctx)
	if err != nil {
		return "", err
	}
	if active != "" && strings.HasPrefix(active, s.flags.ProjectPrefix) {
		return active, nil
	}

	projects, err := s.gcloud.ListProjects(ctx, s.flags.ProjectPrefix)
	if err != nil {
		return "", err
	}
	if len(projects) > 0 {
		return projects[0], nil
	}
	return "", nil
}

// createProject retries with fresh random IDs on collision. Day one is
// bounded and falls back to manual entry; day two keeps going until the run
// context expires.
func (s *service) createProject(ctx context.Context) (*model.Project, error) {
	attempt := 0
	for {
		attempt++
		id, err := s.ids.Generate(s.flags.ProjectPrefix)
		if err != nil {
			return nil, err
		}

		utils.Infof("Creating project %s (attempt %d)", id, attempt)
		createErr := s.gcloud.CreateProject(ctx, id)
		if createErr == nil {
			utils.Successf("Created project %s", id)
			return &model.Project{ID: id}, nil
		}
		if errors.Is(createErr, gcloud.ErrNotFound) {
			return nil, createErr
		}
		utils.Warningf("Creation failed: %v", createErr)

		if s.flags.Day == 1 && attempt >= s.flags.CreateAttempts {
			return s.manualFallback()
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCreateExhausted, err)
		}
	}
}

func (s *service) manualFallback() (*model.Project, error) {
	if s.flags.NonInteractive {
		return nil, ErrCreateExhausted
	}

	id, err := s.prompt.Ask("Enter an existing project ID to use instead")
	if err != nil {
		return nil, err
	}
	if err := s.ids.Validate(id); err != nil {
		return nil, fmt.Errorf("manual fallback: %w", err)
	}
	return &model.Project{ID: id, Reused: true}, nil
}

func (s *service) delegateBilling(ctx context.Context) error {
	path, err := s.locateHelper(HelperBinary)
	if err != nil {
		if s.flags.Day == 1 {
			return fmt.Errorf("billing helper unavailable: %w", err)
		}
		// Day two stages the helper best-effort and lets the invocation
		// itself decide whether the run fails.
		utils.Warningf("Billing helper not staged (%v); relying on PATH at run time", err)
		path = HelperBinary
	}

	utils.Infof("Running billing enablement helper")
	if err := s.runHelper(ctx, path); err != nil {
		return fmt.Errorf("billing enablement failed: %w", err)
	}
	utils.Successf("Billing enablement completed")
	return nil
}

func locateHelper(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	sibling := filepath.Join(filepath.Dir(self), name)
	if _, err := os.Stat(sibling); err != nil {
		return "", fmt.Errorf("%s not found on PATH or next to %s", name, self)
	}
	return sibling, nil
}

func runHelper(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
