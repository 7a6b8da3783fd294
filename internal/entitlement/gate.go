// Package entitlement answers feature and limit questions for an active
// tenant. It only reports; enforcement (blocking creation, hiding UI) is the
// caller's job.
package entitlement

import (
	"github.com/lumeahq/lumea/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Dimension names a usage/limit axis.
type Dimension string

const (
	DimensionUnits   Dimension = "units"
	DimensionUsers   Dimension = "users"
	DimensionClients Dimension = "clients"
	DimensionStorage Dimension = "storage"
)

// Gate evaluates subscription entitlements.
type Gate struct {
	log *zap.Logger
}

func NewGate(log *zap.Logger) *Gate {
	return &Gate{log: log.Named("entitlement.gate")}
}

// HasFeature reports whether the tenant's collapsed enabled set contains the
// feature code. The plan feature list and the free-form flag map were already
// merged when the organization was constructed.
func (g *Gate) HasFeature(org domain.Organization, code string) bool {
	return org.HasFeature(code)
}

// WithinLimit reports whether current usage is strictly below the plan limit
// for the dimension. Unknown dimensions are never within limit.
func (g *Gate) WithinLimit(org domain.Organization, dim Dimension) bool {
	switch dim {
	case DimensionUnits:
		return org.Usage.Units < org.Limits.MaxUnits
	case DimensionUsers:
		return org.Usage.Users < org.Limits.MaxUsers
	case DimensionClients:
		return org.Usage.Clients < org.Limits.MaxClients
	case DimensionStorage:
		return org.Usage.StorageMB < org.Limits.MaxStorageMB
	default:
		g.log.Warn("unknown limit dimension", zap.String("dimension", string(dim)))
		return false
	}
}

// ParseDimension validates a wire-level dimension name.
func ParseDimension(raw string) (Dimension, bool) {
	switch Dimension(raw) {
	case DimensionUnits, DimensionUsers, DimensionClients, DimensionStorage:
		return Dimension(raw), true
	default:
		return "", false
	}
}

// Module provides the entitlement gate.
var Module = fx.Module("entitlement.gate",
	fx.Provide(NewGate),
)
