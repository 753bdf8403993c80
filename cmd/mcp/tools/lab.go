package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/labops/labctl/cmd/mcp/response"
	"github.com/labops/labctl/service/billing"
	"github.com/labops/labctl/service/gcloud"
	"github.com/labops/labctl/service/identity"
	"github.com/labops/labctl/service/statefile"
)

// RegisterLabTools registers all lab status tools with the MCP server
func RegisterLabTools(s *server.MCPServer, stateFile, projectPrefix string) {
	s.AddTool(
		mcp.NewTool("lab_get_state",
			mcp.WithDescription("Report whether labctl has run on this machine and which project ID it persisted. Reads the file named by LAB_PROJECT_FILE (default ~/project_id.txt)."),
		),
		makeLabStateHandler(stateFile),
	)

	s.AddTool(
		mcp.NewTool("lab_get_project_info",
			mcp.WithDescription("Get identity information for the persisted lab project from Cloud Resource Manager."),
		),
		makeProjectInfoHandler(stateFile),
	)

	s.AddTool(
		mcp.NewTool("lab_get_billing_status",
			mcp.WithDescription("Report whether billing is enabled on the persisted lab project and which account it is linked to."),
		),
		makeBillingStatusHandler(stateFile),
	)

	s.AddTool(
		mcp.NewTool("lab_list_projects",
			mcp.WithDescription("List lab projects visible to the active gcloud credentials. The prefix comes from LAB_PROJECT_PREFIX (default gcp-lab)."),
		),
		makeListProjectsHandler(projectPrefix),
	)
}

func makeLabStateHandler(stateFile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp := response.LabState{StateFile: stateFile}

		projectID, err := statefile.NewService(stateFile).Read()
		switch {
		case err == nil:
			resp.Initialized = true
			resp.ProjectID = projectID
		case errors.Is(err, statefile.ErrNotInitialized), errors.Is(err, statefile.ErrEmpty):
			// not an error, the lab just has not been set up yet
		default:
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read lab state: %v", err)), nil
		}

		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeProjectInfoHandler(stateFile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := statefile.NewService(stateFile).Read()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("No lab project recorded yet: %v", err)), nil
		}

		identitySvc, err := identity.NewService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create identity service: %v", err)), nil
		}

		project, err := identitySvc.GetProject(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get project info: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertProject(project), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeBillingStatusHandler(stateFile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := statefile.NewService(stateFile).Read()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("No lab project recorded yet: %v", err)), nil
		}

		billingSvc, err := billing.NewService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create billing service: %v", err)), nil
		}

		status, err := billingSvc.ProjectBillingStatus(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get billing status: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertBillingStatus(projectID, status), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeListProjectsHandler(projectPrefix string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := gcloud.NewService().ListProjects(ctx, projectPrefix)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
		}

		resp := response.ProjectList{Prefix: projectPrefix, Projects: projects}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
