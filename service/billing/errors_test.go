package billing

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestIsAPIDisabled(t *testing.T) {
	disabled := &googleapi.Error{
		Code:    http.StatusForbidden,
		Message: "Cloud Billing API has not been used in project 123 before or it is disabled",
	}
	assert.True(t, IsAPIDisabled(disabled))

	propagating := &googleapi.Error{
		Code:    http.StatusForbidden,
		Message: "Service is disabled for consumer",
	}
	assert.True(t, IsAPIDisabled(propagating))

	hardDenied := &googleapi.Error{
		Code:    http.StatusForbidden,
		Message: "The caller does not have permission",
	}
	assert.False(t, IsAPIDisabled(hardDenied))
	assert.True(t, IsPermissionDenied(hardDenied))

	assert.False(t, IsAPIDisabled(errors.New("network unreachable")))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := &googleapi.Error{Code: http.StatusForbidden, Message: "service is disabled"}
	wrapped := fmt.Errorf("failed to list billing accounts: %w", inner)

	assert.True(t, IsAPIDisabled(wrapped))
	assert.True(t, IsPermissionDenied(wrapped))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&googleapi.Error{Code: http.StatusNotFound}))
	assert.False(t, isNotFound(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, isNotFound(nil))
}
