package entitlement

import (
	"testing"

	"github.com/lumeahq/lumea/internal/tenant/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testOrg() domain.Organization {
	org := domain.Organization{
		Limits: domain.Limits{
			MaxUnits:     2,
			MaxUsers:     5,
			MaxClients:   100,
			MaxStorageMB: 1024,
			Features:     []string{"crm", "scheduling"},
		},
		Usage: domain.Usage{
			Units:     1,
			Users:     5,
			Clients:   99,
			StorageMB: 2048,
		},
		FeatureFlags: map[string]bool{
			"voice_ai":   true,
			"scheduling": false,
			"marketing":  false,
		},
	}
	org.Normalize()
	return org
}

func TestHasFeatureFromPlanList(t *testing.T) {
	gate := NewGate(zap.NewNop())
	org := testOrg()

	// Present in the plan list even though the flag map says false.
	assert.True(t, gate.HasFeature(org, "scheduling"))
	assert.True(t, gate.HasFeature(org, "crm"))
}

func TestHasFeatureFromFlagMap(t *testing.T) {
	gate := NewGate(zap.NewNop())
	org := testOrg()

	assert.True(t, gate.HasFeature(org, "voice_ai"))
	assert.False(t, gate.HasFeature(org, "marketing"))
	assert.False(t, gate.HasFeature(org, "finance"))
}

func TestHasFeatureWithoutFlagMap(t *testing.T) {
	gate := NewGate(zap.NewNop())
	org := domain.Organization{Limits: domain.Limits{Features: []string{"crm"}}}
	org.Normalize()

	assert.True(t, gate.HasFeature(org, "crm"))
	assert.False(t, gate.HasFeature(org, "voice_ai"))
}

func TestWithinLimit(t *testing.T) {
	gate := NewGate(zap.NewNop())
	org := testOrg()

	assert.True(t, gate.WithinLimit(org, DimensionUnits))
	assert.False(t, gate.WithinLimit(org, DimensionUsers), "at the ceiling is not within limit")
	assert.True(t, gate.WithinLimit(org, DimensionClients))
	assert.False(t, gate.WithinLimit(org, DimensionStorage), "usage may exceed limits; the gate only reports")
	assert.False(t, gate.WithinLimit(org, Dimension("bogus")))
}

func TestParseDimension(t *testing.T) {
	for _, valid := range []string{"units", "users", "clients", "storage"} {
		dim, ok := ParseDimension(valid)
		assert.True(t, ok)
		assert.Equal(t, Dimension(valid), dim)
	}

	_, ok := ParseDimension("bandwidth")
	assert.False(t, ok)
}
