package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// principalKey is the key used to store the authenticated principal in the
// request context. Using a custom type prevents collisions.
const principalKey = contextKey("principal")

// GetPrincipalFromContext retrieves the authenticated principal from the Gin
// context. It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val := c.Request.Context().Value(principalKey)
	if val == nil {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}
