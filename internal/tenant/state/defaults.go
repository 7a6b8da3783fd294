package state

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lumeahq/lumea/internal/plan"
	"github.com/lumeahq/lumea/internal/tenant/domain"
)

const (
	defaultOrgName = "Main"
	defaultOrgSlug = "main"
)

// DefaultTenants is the built-in tenant set used when nothing has been
// persisted yet or the persisted payload is unreadable.
func DefaultTenants(catalog *plan.Catalog) []domain.Organization {
	tpl := catalog.DefaultTemplate()
	org := domain.Organization{
		ID:           snowflake.ID(1),
		Name:         defaultOrgName,
		Slug:         defaultOrgSlug,
		PlanID:       tpl.ID,
		Status:       domain.SubscriptionStatusTrial,
		BillingCycle: domain.BillingCycleMonthly,
		Limits: domain.Limits{
			MaxUnits:     tpl.Limits.MaxUnits,
			MaxUsers:     tpl.Limits.MaxUsers,
			MaxClients:   tpl.Limits.MaxClients,
			MaxStorageMB: tpl.Limits.MaxStorageMB,
			Features:     append([]string(nil), tpl.Limits.Features...),
		},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	org.Normalize()
	return []domain.Organization{org}
}
