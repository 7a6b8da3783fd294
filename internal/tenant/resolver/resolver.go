// Package resolver decides the active tenant for a session. Resolution is a
// pure function over (request host, known tenants, persisted selection) so it
// can be re-run whenever the known set changes.
package resolver

import (
	"strings"

	"github.com/lumeahq/lumea/internal/tenant/domain"
)

// Outcome classifies a resolution result.
type Outcome string

const (
	// OutcomeResolved means a single tenant was selected.
	OutcomeResolved Outcome = "resolved"
	// OutcomeNone means no tenant is configured; the session runs unscoped.
	OutcomeNone Outcome = "none"
	// OutcomeNotFound means the host carried a tenant slug that matched
	// nothing. This is an error state, never to be collapsed into OutcomeNone.
	OutcomeNotFound Outcome = "not_found"
)

// Resolution is the result of a resolve run.
type Resolution struct {
	Outcome Outcome
	Tenant  *domain.Organization
}

// excluded first labels that never name a tenant.
var excludedLabels = map[string]bool{
	"www": true,
	"app": true,
}

// CandidateSlug extracts the tenant slug candidate from a request host:
// the first dot-separated label when the host has at least three labels and
// the label is not an excluded prefix. Ports are ignored.
func CandidateSlug(host string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(h, ":"); i >= 0 {
		h = h[:i]
	}
	labels := strings.Split(h, ".")
	if len(labels) < 3 {
		return "", false
	}
	first := labels[0]
	if first == "" || excludedLabels[first] {
		return "", false
	}
	return first, true
}

// Resolve picks the active tenant. Order: host slug, persisted selection,
// default fallback (earliest created, ties by id). A host slug that matches
// nothing is terminal: it yields OutcomeNotFound without falling back.
func Resolve(host string, known []domain.Organization, persistedID string) Resolution {
	if slug, ok := CandidateSlug(host); ok {
		for i := range known {
			if known[i].Slug == slug {
				return Resolution{Outcome: OutcomeResolved, Tenant: &known[i]}
			}
		}
		return Resolution{Outcome: OutcomeNotFound}
	}

	if persistedID != "" {
		for i := range known {
			if known[i].ID.String() == persistedID {
				return Resolution{Outcome: OutcomeResolved, Tenant: &known[i]}
			}
		}
	}

	if def := defaultTenant(known); def != nil {
		return Resolution{Outcome: OutcomeResolved, Tenant: def}
	}

	return Resolution{Outcome: OutcomeNone}
}

// defaultTenant returns the earliest-created tenant, ties broken by id
// ascending, so the fallback does not depend on slice order.
func defaultTenant(known []domain.Organization) *domain.Organization {
	var def *domain.Organization
	for i := range known {
		t := &known[i]
		if def == nil {
			def = t
			continue
		}
		if t.CreatedAt.Before(def.CreatedAt) ||
			(t.CreatedAt.Equal(def.CreatedAt) && t.ID < def.ID) {
			def = t
		}
	}
	return def
}
