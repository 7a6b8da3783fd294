package tenant

import (
	"context"

	"github.com/lumeahq/lumea/internal/tenant/state"
	"github.com/lumeahq/lumea/internal/tenant/store"
	"go.uber.org/fx"
)

// Module wires the tenant state store and the tenant coordinator. The store
// loads persisted state and resolves on startup.
var Module = fx.Module("tenant",
	fx.Provide(
		state.DefaultTenants,
		state.New,
		store.New,
	),
	fx.Invoke(func(lc fx.Lifecycle, s *store.Store) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error { return s.Start(ctx) },
			OnStop:  func(ctx context.Context) error { return s.Stop(ctx) },
		})
	}),
)
