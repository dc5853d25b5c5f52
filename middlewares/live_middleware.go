package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order-app/utils"
)

// LiveSessionMiddleware memastikan parameter wajib koneksi live hadir
// sebelum handler menjalankan validasi sesi dan upgrade.
func LiveSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("room") == "" || c.Query("name") == "" || c.Query("qrCode") == "" {
			utils.RespondWithError(c, utils.NewValidationError("room, name and qrCode are required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
