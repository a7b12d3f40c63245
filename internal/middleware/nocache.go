package middleware

import "github.com/gin-gonic/gin"

// NoCache sets Cache-Control: no-cache on responses of mutating methods so
// intermediaries never serve stale voucher/account state after a write.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
			c.Header("Cache-Control", "no-cache")
		}
		c.Next()
	}
}
