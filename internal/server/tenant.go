package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumeahq/lumea/internal/tenant/domain"
	"github.com/lumeahq/lumea/internal/tenant/resolver"
	"github.com/lumeahq/lumea/internal/tenant/store"
)

// ResolveTenant resolves the active tenant for the request host. Unscoped
// sessions get 204; a host naming an unknown tenant gets the distinct
// tenant_not_found error.
func (s *Server) ResolveTenant(c *gin.Context) {
	res := s.store.Resolve(c.Request.Context(), c.Request.Host)

	switch res.Outcome {
	case resolver.OutcomeNotFound:
		AbortWithError(c, domain.ErrTenantNotFound)
	case resolver.OutcomeNone:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, res.Tenant)
	}
}

func (s *Server) ListTenants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.store.Known()})
}

func (s *Server) CreateTenant(c *gin.Context) {
	var req domain.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	org, err := s.store.CreateTenant(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

func (s *Server) ActivateTenant(c *gin.Context) {
	org, err := s.store.SwitchTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// AuthEvent receives authentication-state changes from the identity
// integration. The directory sync it may trigger is fire-and-forget.
func (s *Server) AuthEvent(c *gin.Context) {
	var ev store.AuthChange
	if err := c.ShouldBindJSON(&ev); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	s.store.OnAuthChange(c.Request.Context(), ev)
	c.Status(http.StatusAccepted)
}
