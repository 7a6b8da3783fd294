package main

import (
	"github.com/bwmarrin/snowflake"
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

func main() {
	app := fx.New(
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
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
