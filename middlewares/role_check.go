package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order-app/utils"
)

// RequireRoles menolak request jika role pada context tidak termasuk
// daftar yang diizinkan. Dipasang setelah AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondWithError(c, utils.NewAuthError("role not found in context"))
			c.Abort()
			return
		}

		role, _ := roleInterface.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAuthError("you do not have permission"))
		c.Abort()
	}
}
