// Package state persists tenant selection across restarts: the known tenant
// set and the active tenant id, as two independent keyed values.
package state

import (
	"context"
	"fmt"

	"github.com/lumeahq/lumea/internal/config"
	"github.com/lumeahq/lumea/internal/tenant/domain"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	KeyKnownTenants   = "known_tenants"
	KeyActiveTenantID = "active_tenant_id"
)

// Store reads and writes tenant selection state. Loads are best-effort:
// corrupt payloads fall back to the default set instead of failing.
type Store interface {
	LoadTenants(ctx context.Context) ([]domain.Organization, error)
	SaveTenants(ctx context.Context, tenants []domain.Organization) error
	LoadActiveTenantID(ctx context.Context) (string, error)
	SaveActiveTenantID(ctx context.Context, id string) error
}

// New selects the configured backend.
func New(lc fx.Lifecycle, cfg config.Config, db *gorm.DB, defaults []domain.Organization, log *zap.Logger) (Store, error) {
	switch cfg.StateBackend {
	case config.StateBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
		return NewRedisStore(client, defaults, log), nil
	case config.StateBackendDB:
		return NewDBStore(db, defaults, log)
	default:
		return nil, fmt.Errorf("unsupported tenant state backend %q", cfg.StateBackend)
	}
}

func normalizeAll(tenants []domain.Organization) []domain.Organization {
	for i := range tenants {
		tenants[i].Normalize()
	}
	return tenants
}
