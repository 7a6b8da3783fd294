// Package domain contains the organization model shared by the tenant
// resolver, store and persistence layers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SubscriptionStatus represents lifecycle states for a tenant subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial    SubscriptionStatus = "trial"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// BillingCycle is how often a tenant is billed.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// Limits is the plan ceiling snapshot carried on a tenant.
type Limits struct {
	MaxUnits     int      `json:"max_units"`
	MaxUsers     int      `json:"max_users"`
	MaxClients   int      `json:"max_clients"`
	MaxStorageMB int64    `json:"max_storage_mb"`
	Features     []string `json:"features"`
}

// Usage is the current consumption snapshot. The gate only reports limit
// violations; it never clamps these values.
type Usage struct {
	Units               int   `json:"units"`
	Users               int   `json:"users"`
	Clients             int   `json:"clients"`
	StorageMB           int64 `json:"storage_mb"`
	MonthlyAppointments int   `json:"monthly_appointments"`
}

// Organization represents a tenant. Slug is unique within the known set and
// drives host-based routing.
type Organization struct {
	ID           snowflake.ID       `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	PlanID       string             `json:"plan_id"`
	Status       SubscriptionStatus `json:"status"`
	BillingCycle BillingCycle       `json:"billing_cycle"`
	Limits       Limits             `json:"limits"`
	Usage        Usage              `json:"usage"`
	OwnerEmail   string             `json:"owner_email"`
	CreatedAt    time.Time          `json:"created_at"`

	// FeatureFlags is the free-form wire-level flag map. It is merged into
	// EnabledFeatures at construction; nothing reads it afterwards.
	FeatureFlags map[string]bool `json:"feature_flags,omitempty"`

	// EnabledFeatures is the single source of truth for feature checks:
	// Limits.Features union the truthy FeatureFlags entries.
	EnabledFeatures []string `json:"enabled_features"`
}

// Normalize rebuilds EnabledFeatures from the two wire-level sources. Called
// wherever an Organization enters the system (create, directory enrichment,
// persistence load).
func (o *Organization) Normalize() {
	seen := make(map[string]bool, len(o.Limits.Features)+len(o.FeatureFlags))
	enabled := make([]string, 0, len(o.Limits.Features)+len(o.FeatureFlags))
	for _, f := range o.Limits.Features {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		enabled = append(enabled, f)
	}
	for f, on := range o.FeatureFlags {
		if !on || f == "" || seen[f] {
			continue
		}
		seen[f] = true
		enabled = append(enabled, f)
	}
	o.EnabledFeatures = enabled
}

// HasFeature reports whether the collapsed enabled set contains code.
func (o *Organization) HasFeature(code string) bool {
	for _, f := range o.EnabledFeatures {
		if f == code {
			return true
		}
	}
	return false
}
