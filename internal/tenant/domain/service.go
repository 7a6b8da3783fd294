package domain

import "errors"

// CreateTenantRequest is the input for creating an organization.
type CreateTenantRequest struct {
	Name       string          `json:"name"`
	OwnerEmail string          `json:"owner_email"`
	PlanID     string          `json:"plan_id,omitempty"`
	Flags      map[string]bool `json:"feature_flags,omitempty"`
}

var (
	// ErrTenantNotFound means a host carried a recognizable slug that matched
	// no known tenant. Distinct from the unscoped "no tenant" case; callers
	// must surface it, not swallow it.
	ErrTenantNotFound = errors.New("tenant_not_found")

	// ErrUnknownTenant means a switch or activation referenced an id outside
	// the known set. No state changes.
	ErrUnknownTenant = errors.New("unknown_tenant")

	ErrDuplicateSlug  = errors.New("duplicate_slug")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidPlan    = errors.New("invalid_plan")
	ErrNoActiveTenant = errors.New("no_active_tenant")
)
