package store

import (
	"github.com/lumeahq/lumea/internal/tenant/domain"
	"github.com/oklog/ulid/v2"
)

// ChangeReason says why the active tenant changed.
type ChangeReason string

const (
	ReasonSwitch ChangeReason = "switch"
	ReasonCreate ChangeReason = "create"
	ReasonAdopt  ChangeReason = "adopt"
)

// TenantChanged is fanned out to subscribers whenever the active tenant
// changes. Downstream modules reset their own local state on it; there is no
// process-wide restart.
type TenantChanged struct {
	EventID string              `json:"event_id"`
	Tenant  domain.Organization `json:"tenant"`
	Reason  ChangeReason        `json:"reason"`
}

// Subscribe registers a tenant-change listener. The returned cancel func
// removes it. Events are dropped for slow consumers rather than blocking the
// store.
func (s *Store) Subscribe() (<-chan TenantChanged, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan TenantChanged, 8)
	s.subs[id] = ch

	cancel := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if existing, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(existing)
		}
	}
	return ch, cancel
}

func (s *Store) emit(ev TenantChanged) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Store) newEventID() string {
	return ulid.Make().String()
}
