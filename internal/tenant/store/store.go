// Package store coordinates tenant state: it owns the known tenant set and
// the active selection, merges directory results, and re-runs resolution
// whenever the known set changes.
package store

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/lumeahq/lumea/internal/clock"
	"github.com/lumeahq/lumea/internal/directory"
	"github.com/lumeahq/lumea/internal/plan"
	"github.com/lumeahq/lumea/internal/tenant/domain"
	"github.com/lumeahq/lumea/internal/tenant/resolver"
	"github.com/lumeahq/lumea/internal/tenant/state"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// State is the store lifecycle state.
type State string

const (
	// StateLoading means resolution has not been attempted yet.
	StateLoading State = "loading"
	// StateResolved means resolution ran; there may or may not be an active
	// tenant (unscoped sessions are still Resolved).
	StateResolved State = "resolved"
	// StateUnresolved means the host named a tenant that does not exist.
	// Recovery requires an explicit action (a different host or a switch).
	StateUnresolved State = "unresolved"
)

// AuthChange is an authentication-state change delivered by the identity
// integration.
type AuthChange struct {
	UserID   string `json:"user_id"`
	SignedIn bool   `json:"signed_in"`
}

type Params struct {
	fx.In

	State     state.Store
	Directory directory.Client
	Catalog   *plan.Catalog
	Clock     clock.Clock
	GenID     *snowflake.Node
	Log       *zap.Logger
}

// Store is the single owner of tenant selection state. All persisted writes
// flow through it.
type Store struct {
	stateStore state.Store
	directory  directory.Client
	catalog    *plan.Catalog
	clock      clock.Clock
	genID      *snowflake.Node
	log        *zap.Logger

	mu       sync.Mutex
	known    []domain.Organization
	active   *domain.Organization
	activeID string
	current  State
	lastHost string

	// fetchGen guards against stale directory responses: a fetch result is
	// only applied if no newer auth change arrived while it was in flight.
	fetchGen uint64
	inflight sync.WaitGroup

	subsMu  sync.Mutex
	subs    map[int]chan TenantChanged
	nextSub int
}

// New builds the store in the Loading state. Call Start before use.
func New(p Params) *Store {
	return &Store{
		stateStore: p.State,
		directory:  p.Directory,
		catalog:    p.Catalog,
		clock:      p.Clock,
		genID:      p.GenID,
		log:        p.Log.Named("tenant.store"),
		current:    StateLoading,
		subs:       map[int]chan TenantChanged{},
	}
}

// Start loads persisted state and runs the initial resolution. The initial
// pass has no request host; host-based resolution happens per request.
func (s *Store) Start(ctx context.Context) error {
	tenants, err := s.stateStore.LoadTenants(ctx)
	if err != nil {
		return err
	}
	activeID, err := s.stateStore.LoadActiveTenantID(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.known = tenants
	s.activeID = activeID
	s.resolveLocked(ctx, "")
	return nil
}

// Stop waits for in-flight directory fetches.
func (s *Store) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resolve runs tenant resolution for a request host against the current
// known set and updates the active selection accordingly.
func (s *Store) Resolve(ctx context.Context, host string) resolver.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHost = host
	return s.resolveLocked(ctx, host)
}

// resolveLocked re-runs the pure resolver and applies its outcome. Callers
// hold s.mu. Running it twice with the same inputs is a no-op.
func (s *Store) resolveLocked(ctx context.Context, host string) resolver.Resolution {
	res := resolver.Resolve(host, s.known, s.activeID)
	resolutions.WithLabelValues(string(res.Outcome)).Inc()

	switch res.Outcome {
	case resolver.OutcomeNotFound:
		s.current = StateUnresolved
		s.active = nil
	case resolver.OutcomeNone:
		s.current = StateResolved
		s.active = nil
	case resolver.OutcomeResolved:
		s.current = StateResolved
		if s.active == nil || s.active.ID != res.Tenant.ID {
			s.setActiveLocked(ctx, *res.Tenant, ReasonAdopt)
		}
	}
	return res
}

// setActiveLocked updates the active tenant, persists the selection and
// notifies subscribers. Persistence failures are soft.
func (s *Store) setActiveLocked(ctx context.Context, t domain.Organization, reason ChangeReason) {
	s.active = &t
	s.activeID = t.ID.String()
	if err := s.stateStore.SaveActiveTenantID(ctx, s.activeID); err != nil {
		s.log.Warn("persisting active tenant failed", zap.Error(err))
	}
	s.emit(TenantChanged{
		EventID: s.newEventID(),
		Tenant:  t,
		Reason:  reason,
	})
}

// OnAuthChange reacts to an authentication-state change. Sign-in triggers a
// directory fetch in the background; sign-out does nothing (cached tenants
// stay usable).
func (s *Store) OnAuthChange(ctx context.Context, ev AuthChange) {
	if !ev.SignedIn || ev.UserID == "" {
		return
	}

	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()

	s.inflight.Add(1)
	go s.fetch(context.WithoutCancel(ctx), ev.UserID, gen)
}

func (s *Store) fetch(ctx context.Context, userID string, gen uint64) {
	defer s.inflight.Done()

	orgs, err := s.directory.ListEntitledOrganizations(ctx, userID)
	if err != nil {
		// Soft failure: keep whatever we already have.
		s.log.Warn("directory fetch failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.fetchGen {
		s.log.Debug("stale directory response dropped", zap.String("user_id", userID))
		return
	}

	s.known = merge(s.known, orgs)

	if s.activeID == "" && len(orgs) > 0 {
		// Adopt the first fetched result, through its merged entry so a
		// locally cached record is not shadowed by the remote copy.
		for i := range s.known {
			if s.known[i].ID == orgs[0].ID {
				s.setActiveLocked(ctx, s.known[i], ReasonAdopt)
				s.current = StateResolved
				break
			}
		}
	}

	if err := s.stateStore.SaveTenants(ctx, s.known); err != nil {
		s.log.Warn("persisting known tenants failed", zap.Error(err))
	}

	s.resolveLocked(ctx, s.lastHost)
}

// merge unions directory results into the known set, deduplicated by id.
// Existing entries win on collision; the remote never overwrites a cached
// tenant.
func merge(existing, fetched []domain.Organization) []domain.Organization {
	seen := make(map[snowflake.ID]bool, len(existing))
	out := make([]domain.Organization, 0, len(existing)+len(fetched))
	for _, t := range existing {
		seen[t.ID] = true
		out = append(out, t)
	}
	for _, t := range fetched {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// Active returns a copy of the active tenant, if any.
func (s *Store) Active() (domain.Organization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.Organization{}, false
	}
	return *s.active, true
}

// Known returns a copy of the known tenant set.
func (s *Store) Known() []domain.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Organization, len(s.known))
	copy(out, s.known)
	return out
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
