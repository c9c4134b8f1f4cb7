package azure

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Registry errors
	ErrRegistryNotFound      = errors.New("container registry not found in subscription")
	ErrRegistryAdminDisabled = errors.New("container registry admin user is disabled")

	// Provider errors
	ErrProviderRegistration = errors.New("resource provider registration did not complete")
)

// ProvisionError wraps Azure API errors with the failed operation and
// resource.
type ProvisionError struct {
	Op       string // Operation that failed
	Resource string // Resource name if applicable
	Err      error
}

func (e *ProvisionError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// NewProvisionError creates a new ProvisionError.
func NewProvisionError(op, resource string, err error) *ProvisionError {
	return &ProvisionError{
		Op:       op,
		Resource: resource,
		Err:      err,
	}
}
