package middleware

import (
	"net/http"
	"strings"

	"campusgate/internal/modules/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityGate resolves the bearer token (if any) into an identity context
// and attaches it to the request. It never aborts: an unknown or missing
// token simply yields the anonymous identity, and guarded routes enforce
// login themselves via Require(). Only a store failure stops the request.
func IdentityGate(service *auth.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)

		identity, err := service.Resolve(c.Request.Context(), token)
		if err != nil {
			log.Error("identity resolution failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"code": "INTERNAL_ERROR", "message": "identity resolution failed"},
			})
			return
		}

		auth.SetIdentity(c, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	// Legacy clients send the bare token.
	return strings.TrimSpace(c.GetHeader("X-Auth-Token"))
}
