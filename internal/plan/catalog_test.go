package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLookup(t *testing.T) {
	c := NewStaticCatalog(DefaultCatalog())

	p, ok := c.Get("pro")
	require.True(t, ok)
	assert.Equal(t, TierPro, p.Tier)
	assert.Contains(t, p.Limits.Features, "finance")

	_, ok = c.Get("platinum")
	assert.False(t, ok)

	assert.Len(t, c.List(), 3)
}

func TestDefaultTemplate(t *testing.T) {
	c := NewStaticCatalog(DefaultCatalog())

	tpl := c.DefaultTemplate()
	assert.Equal(t, DefaultPlanID, tpl.ID)
	assert.Positive(t, tpl.Limits.MaxUsers)
}

func TestMergeCatalogOverridesByID(t *testing.T) {
	defaults := DefaultCatalog()
	overrides := []Plan{
		{ID: "starter", Tier: TierStarter, Name: "Starter v2", Currency: "BRL"},
		{ID: "custom", Tier: TierEnterprise, Name: "Custom"},
	}

	merged := mergeCatalog(defaults, overrides)
	require.Len(t, merged, 4)

	c := NewStaticCatalog(merged)
	starter, ok := c.Get("starter")
	require.True(t, ok)
	assert.Equal(t, "Starter v2", starter.Name)
	assert.Equal(t, "BRL", starter.Currency)

	_, ok = c.Get("custom")
	assert.True(t, ok)
}

func TestValidateCatalog(t *testing.T) {
	assert.Error(t, validateCatalog(nil))
	assert.Error(t, validateCatalog([]Plan{{ID: ""}}))
	assert.Error(t, validateCatalog([]Plan{{ID: "a"}, {ID: "a"}}))
	assert.NoError(t, validateCatalog([]Plan{{ID: "a"}, {ID: "b"}}))
}
