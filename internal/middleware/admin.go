package middleware

import (
	"net/http"

	"campusgate/internal/modules/auth"

	"github.com/gin-gonic/gin"
)

// AdminOnly admits only logged-in users whose cardnum is on the externally
// supplied allow-list.
func AdminOnly(allowed []string) gin.HandlerFunc {
	allowSet := make(map[string]struct{}, len(allowed))
	for _, cardnum := range allowed {
		allowSet[cardnum] = struct{}{}
	}

	return func(c *gin.Context) {
		session, err := auth.IdentityFrom(c).Require()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "login required"},
			})
			return
		}

		if _, ok := allowSet[session.Cardnum]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "admin access required"},
			})
			return
		}

		c.Next()
	}
}
