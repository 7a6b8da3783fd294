package store

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/lumeahq/lumea/internal/tenant/domain"
	"go.uber.org/zap"
)

// SwitchTenant makes a known tenant active and persists the selection.
// Unknown ids are rejected with no state change.
func (s *Store) SwitchTenant(ctx context.Context, id string) (domain.Organization, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return domain.Organization{}, domain.ErrUnknownTenant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.known {
		if s.known[i].ID.String() == trimmed {
			target := s.known[i]
			s.setActiveLocked(ctx, target, ReasonSwitch)
			s.current = StateResolved
			switches.Inc()
			s.log.Info("tenant switched",
				zap.String("tenant_id", target.ID.String()),
				zap.String("slug", target.Slug),
			)
			return target, nil
		}
	}
	return domain.Organization{}, domain.ErrUnknownTenant
}

// CreateTenant creates an organization, appends it to the known set and makes
// it active. Usage starts at zero and the subscription starts in trial.
func (s *Store) CreateTenant(ctx context.Context, req domain.CreateTenantRequest) (domain.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Organization{}, domain.ErrInvalidName
	}

	planID := strings.TrimSpace(req.PlanID)
	if planID == "" {
		planID = s.catalog.DefaultTemplate().ID
	}
	tpl, ok := s.catalog.Get(planID)
	if !ok {
		return domain.Organization{}, domain.ErrInvalidPlan
	}

	orgSlug := slug.Make(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.known {
		if s.known[i].Slug == orgSlug {
			return domain.Organization{}, domain.ErrDuplicateSlug
		}
	}

	org := domain.Organization{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         orgSlug,
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
		OwnerEmail:   strings.TrimSpace(req.OwnerEmail),
		FeatureFlags: req.Flags,
		CreatedAt:    s.clock.Now(),
	}
	org.Normalize()

	s.known = append(s.known, org)
	if err := s.stateStore.SaveTenants(ctx, s.known); err != nil {
		s.log.Warn("persisting known tenants failed", zap.Error(err))
	}

	s.setActiveLocked(ctx, org, ReasonCreate)
	s.current = StateResolved

	s.log.Info("tenant created",
		zap.String("tenant_id", org.ID.String()),
		zap.String("slug", org.Slug),
		zap.String("plan", org.PlanID),
	)
	return org, nil
}
