package middleware

import (
	"net/http"

	"coursemarket/internal/service"

	"github.com/gin-gonic/gin"
)

// EducatorRequired пускает дальше только пользователей с ролью educator.
// Ставится после AuthMiddleware.
func EducatorRequired(users service.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userId")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || user.Role != "educator" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized Access"})
			return
		}

		c.Next()
	}
}
