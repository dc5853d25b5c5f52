package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order-app/utils"
)

// AuthMiddleware membaca JWT dari header Authorization (atau query token
// untuk koneksi websocket dashboard) dan menaruh claims di context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			utils.RespondWithError(c, utils.NewAuthError("authorization token missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(token, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondWithError(c, utils.NewAuthError("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.UserID == 0 {
			utils.RespondWithError(c, utils.NewAuthError("invalid user id in token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
