package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumeahq/lumea/internal/entitlement"
	"github.com/lumeahq/lumea/internal/tenant/domain"
)

func (s *Server) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.catalog.List()})
}

// FeatureEntitlement reports whether the active tenant has a feature enabled.
// Modules hide unavailable features; they never hard-fail on them.
func (s *Server) FeatureEntitlement(c *gin.Context) {
	org, ok := s.store.Active()
	if !ok {
		AbortWithError(c, domain.ErrNoActiveTenant)
		return
	}

	code := c.Param("code")
	c.JSON(http.StatusOK, gin.H{
		"feature": code,
		"enabled": s.gate.HasFeature(org, code),
	})
}

// LimitEntitlement reports whether the active tenant is under its plan limit
// for a dimension. Callers use it to block creation actions.
func (s *Server) LimitEntitlement(c *gin.Context) {
	org, ok := s.store.Active()
	if !ok {
		AbortWithError(c, domain.ErrNoActiveTenant)
		return
	}

	dim, ok := entitlement.ParseDimension(c.Param("dimension"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dimension":    dim,
		"within_limit": s.gate.WithinLimit(org, dim),
	})
}
