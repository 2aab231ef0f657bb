package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tourbook/tourbook-api/internal/application"
	"github.com/tourbook/tourbook-api/internal/domain/entity"
	repo "github.com/tourbook/tourbook-api/internal/domain/repository"
	"github.com/tourbook/tourbook-api/pkg/helpers"
	"github.com/tourbook/tourbook-api/pkg/response"
)

const identityKey = "identity"

// Auth validates the Authorization bearer token and re-checks that the
// account still exists and is ACTIVE. On success it stores an explicit
// Identity in the Gin context for handlers to pass into service calls.
// Expired tokens get a distinct message so clients can tell "log in again"
// from "corrupt token".
func Auth(jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			response.AbortError(c, http.StatusUnauthorized, "No token provided, authorization denied", nil)
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.AbortError(c, http.StatusUnauthorized, "Token expired", nil)
				return
			}
			response.AbortError(c, http.StatusUnauthorized, "Invalid token", nil)
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.AbortError(c, http.StatusUnauthorized, "User not found, authorization denied", nil)
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "Server error", nil)
			return
		}
		if u.Status != entity.StatusActive {
			response.AbortError(c, http.StatusUnauthorized, "Account is suspended or inactive", nil)
			return
		}

		c.Set(identityKey, application.Identity{UserID: u.ID, Email: u.Email, Role: u.Role})
		c.Next()
	}
}

// IdentityFrom returns the authenticated Identity set by Auth.
func IdentityFrom(c *gin.Context) (application.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return application.Identity{}, false
	}
	id, ok := v.(application.Identity)
	return id, ok
}

// RequireRole aborts with 403 unless the authenticated identity carries the
// given role.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || id.Role != role {
			response.AbortError(c, http.StatusForbidden, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}
