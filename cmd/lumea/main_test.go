package main

import (
	"testing"

	"github.com/lumeahq/lumea/internal/clock"
	"github.com/lumeahq/lumea/internal/config"
	"github.com/lumeahq/lumea/internal/directory"
	"github.com/lumeahq/lumea/internal/entitlement"
	"github.com/lumeahq/lumea/internal/logger"
	"github.com/lumeahq/lumea/internal/plan"
	"github.com/lumeahq/lumea/internal/server"
	"github.com/lumeahq/lumea/internal/tenant"
	"github.com/lumeahq/lumea/pkg/db"
	"go.uber.org/fx"
)

// TestDependencyGraph validates the same module list main assembles, so a
// provider signature drifting away from what the graph supplies fails here
// instead of at boot.
func TestDependencyGraph(t *testing.T) {
	err := fx.ValidateApp(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		plan.Module,
		directory.Module,
		tenant.Module,
		entitlement.Module,

		server.Module,
	)
	if err != nil {
		t.Fatalf("dependency graph does not resolve: %v", err)
	}
}
