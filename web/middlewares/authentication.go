package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/security"
	"interntrack.com/interntrack/web/common"
)

const currentUserKey = "currentUser"

// Authentication checks for a valid Bearer token and loads the matching
// active user into the request context.
func Authentication(jwtSecret []byte, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("interntrack.token")
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("access denied, no token provided"))
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("access denied, no token provided"))
				return
			}
			tokenStr = parts[1]
		}

		claims, err := security.ParseUserToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid token or user not found"))
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireRole rejects requests from users outside the given roles.
func RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("authentication required"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("insufficient permissions"))
	}
}

// CurrentUser returns the authenticated user, or nil outside the
// Authentication middleware.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// IsSelfOrAdmin reports whether the authenticated user owns the target
// resource or is an admin.
func IsSelfOrAdmin(c *gin.Context, targetUserID string) bool {
	user := CurrentUser(c)
	if user == nil {
		return false
	}
	return user.ID == targetUserID || user.Role == model.RoleAdmin
}
