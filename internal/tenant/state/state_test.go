package state

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lumeahq/lumea/internal/config"
	"github.com/lumeahq/lumea/internal/plan"
	"github.com/lumeahq/lumea/internal/tenant/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type hookRecorder struct {
	hooks []fx.Hook
}

func (r *hookRecorder) Append(h fx.Hook) { r.hooks = append(r.hooks, h) }

func setupStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	catalog := plan.NewStaticCatalog(plan.DefaultCatalog())
	store, err := NewDBStore(db, DefaultTenants(catalog), zap.NewNop())
	require.NoError(t, err)
	return store, db
}

func TestLoadTenantsReturnsDefaultsWhenEmpty(t *testing.T) {
	store, _ := setupStore(t)

	tenants, err := store.LoadTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "main", tenants[0].Slug)
	assert.NotEmpty(t, tenants[0].EnabledFeatures)
}

func TestSaveAndLoadTenantsRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	tenants := []domain.Organization{
		{
			ID:        snowflake.ID(11),
			Name:      "Clinica do Joao",
			Slug:      "clinicadojoao",
			PlanID:    "pro",
			Status:    domain.SubscriptionStatusActive,
			Limits:    domain.Limits{MaxUsers: 20, Features: []string{"crm"}},
			CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        snowflake.ID(12),
			Name:      "Outra",
			Slug:      "outra",
			PlanID:    "starter",
			Status:    domain.SubscriptionStatusTrial,
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, store.SaveTenants(ctx, tenants))

	loaded, err := store.LoadTenants(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "clinicadojoao", loaded[0].Slug)
	assert.Contains(t, loaded[0].EnabledFeatures, "crm")
}

func TestLoadTenantsFallsBackOnCorruptPayload(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	row := TenantState{Key: KeyKnownTenants, Value: datatypes.JSON("{not json"), UpdatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&row).Error)

	tenants, err := store.LoadTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "main", tenants[0].Slug)
}

func TestRedisBackendClosesClientOnStop(t *testing.T) {
	lc := &hookRecorder{}
	cfg := config.Config{StateBackend: config.StateBackendRedis, RedisAddr: "localhost:6379"}

	store, err := New(lc, cfg, nil, nil, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, store)

	require.Len(t, lc.hooks, 1)
	require.NotNil(t, lc.hooks[0].OnStop)
	assert.NoError(t, lc.hooks[0].OnStop(context.Background()))
}

func TestActiveTenantIDRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	id, err := store.LoadActiveTenantID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, store.SaveActiveTenantID(ctx, "11"))
	require.NoError(t, store.SaveActiveTenantID(ctx, "12"))

	id, err = store.LoadActiveTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12", id)
}
