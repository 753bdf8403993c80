package billing

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// IsAPIDisabled reports whether an error is the PermissionDenied shape the
// Cloud Billing API returns while the service is disabled or still
// propagating after being enabled. This is recoverable; plain permission
// errors are not.
func IsAPIDisabled(err error) bool {
	apiErr := asAPIError(err)
	if apiErr == nil || apiErr.Code != http.StatusForbidden {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "api has not been used") || strings.Contains(msg, "service is disabled")
}

// IsPermissionDenied reports whether an error is a hard permission failure.
func IsPermissionDenied(err error) bool {
	apiErr := asAPIError(err)
	return apiErr != nil && apiErr.Code == http.StatusForbidden
}

func isNotFound(err error) bool {
	apiErr := asAPIError(err)
	return apiErr != nil && apiErr.Code == http.StatusNotFound
}

func asAPIError(err error) *googleapi.Error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
