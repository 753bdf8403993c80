package response

import (
	"google.golang.org/api/cloudresourcemanager/v1"

	"github.com/labops/labctl/model"
)

// ConvertProject converts a Cloud Resource Manager project to the MCP response format
func ConvertProject(project *cloudresourcemanager.Project) *ProjectInfo {
	return &ProjectInfo{
		ProjectID:      project.ProjectId,
		Name:           project.Name,
		Number:         project.ProjectNumber,
		LifecycleState: project.LifecycleState,
		CreateTime:     project.CreateTime,
		Labels:         project.Labels,
	}
}

// ConvertBillingStatus converts a billing status to the MCP response format
func ConvertBillingStatus(projectID string, status model.BillingStatus) *BillingStatus {
	return &BillingStatus{
		ProjectID:      projectID,
		BillingEnabled: status.Enabled,
		BillingAccount: status.AccountName,
	}
}
