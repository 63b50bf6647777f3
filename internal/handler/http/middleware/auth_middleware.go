package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
)

const (
	AuthHeaderKey  = "Authorization"
	AuthTypeBearer = "Bearer"

	// GinContextCallerKey holds the authorized admin's DirectoryEntry.
	GinContextCallerKey = "caller"
	// GinContextCallerIDKey holds the authorized admin's identity id.
	GinContextCallerIDKey = "callerID"
)

// AccessGate authorizes a bearer token and returns the caller's directory
// entry when they are an admin.
type AccessGate interface {
	Authorize(ctx context.Context, token string) (*models.DirectoryEntry, error)
}

// AuthMiddleware enforces admin access on everything behind it. A missing
// or malformed Authorization header short-circuits with 401 before any
// other processing.
func AuthMiddleware(gate AccessGate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header required",
				"code":  domainErrors.CodeUnauthenticated,
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthTypeBearer) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header format must be Bearer <token>",
				"code":  domainErrors.CodeUnauthenticated,
			})
			return
		}

		caller, err := gate.Authorize(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, domainErrors.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "invalid or expired token",
					"code":  domainErrors.CodeUnauthenticated,
				})
			case errors.Is(err, domainErrors.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "admin access required",
					"code":  domainErrors.CodeForbidden,
				})
			default:
				logger.Error("Access gate failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "authorization check failed",
					"code":  domainErrors.CodeUpstreamFailure,
				})
			}
			return
		}

		c.Set(GinContextCallerKey, caller)
		c.Set(GinContextCallerIDKey, caller.ID)
		c.Next()
	}
}
