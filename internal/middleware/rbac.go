package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/praja-edu/results-portal-api/internal/models"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
	"github.com/praja-edu/results-portal-api/pkg/response"
)

// RequireRoles restricts a route to the given roles. Jurisdiction checks
// happen in the services; this guard only gates by position in the
// hierarchy.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Officials admits every authenticated portal role.
func Officials() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleDEO, models.RoleMEO, models.RoleSchoolAdmin)
}
