package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumeahq/lumea/internal/tenant/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware converts handler errors into JSON responses after
// the chain runs. Handlers attach errors with AbortWithError.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		// Host named a tenant that does not exist. Distinct from the
		// unscoped "no tenant" case, which is not an error at all.
		return http.StatusNotFound, errorPayload{
			Type:    "tenant_not_found",
			Message: "organization not found",
		}
	case errors.Is(err, domain.ErrUnknownTenant):
		return http.StatusNotFound, errorPayload{
			Type:    "unknown_tenant",
			Message: "tenant is not in the known set",
		}
	case errors.Is(err, domain.ErrNoActiveTenant):
		return http.StatusNotFound, errorPayload{
			Type:    "no_active_tenant",
			Message: "no active tenant",
		}
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "slug already in use",
		}
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidPlan),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
