// Package server exposes the platform core over HTTP for the feature
// modules: tenant resolution, switching, the plan catalog and the
// entitlement gate.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumeahq/lumea/internal/config"
	"github.com/lumeahq/lumea/internal/entitlement"
	"github.com/lumeahq/lumea/internal/plan"
	"github.com/lumeahq/lumea/internal/tenant/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServerParams struct {
	fx.In

	Engine  *gin.Engine
	Store   *store.Store
	Catalog *plan.Catalog
	Gate    *entitlement.Gate
	Log     *zap.Logger
}

// Server holds handler dependencies.
type Server struct {
	engine  *gin.Engine
	store   *store.Store
	catalog *plan.Catalog
	gate    *entitlement.Gate
	log     *zap.Logger
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:  p.Engine,
		store:   p.Store,
		catalog: p.Catalog,
		gate:    p.Gate,
		log:     p.Log.Named("http.server"),
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// RegisterAPIRoutes mounts the platform core API.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/tenant", s.ResolveTenant)
	api.GET("/tenants", s.ListTenants)
	api.POST("/tenants", s.CreateTenant)
	api.POST("/tenants/:id/activate", s.ActivateTenant)

	api.POST("/auth/events", s.AuthEvent)

	api.GET("/plans", s.ListPlans)
	api.GET("/tenant/entitlements/:code", s.FeatureEntitlement)
	api.GET("/tenant/limits/:dimension", s.LimitEntitlement)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// Module wires the HTTP surface.
var Module = fx.Module("http.server",
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(run),
)
