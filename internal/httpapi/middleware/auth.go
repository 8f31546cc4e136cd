package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/alexdb/alexdb/internal/store/apikeys"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Authentication validates the X-Auth-Token header against keys, using
// a constant-time comparison to avoid timing side channels, mirroring
// the teacher's bearer-token check in internal/http/middleware/auth.go
// generalized from a single demo secret to a set of issued keys. A
// no-op when enabled is false — the store itself is the source of
// truth for whether authentication is required.
func Authentication(keys *apikeys.Set, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		token := c.GetHeader("X-Auth-Token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(token)
		if err != nil || !constantTimeExists(keys, id) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}

// constantTimeExists checks membership without letting the presence
// check itself leak timing information about which key matched.
func constantTimeExists(keys *apikeys.Set, id uuid.UUID) bool {
	match := 0
	for _, k := range keys.List() {
		if subtle.ConstantTimeCompare(k[:], id[:]) == 1 {
			match = 1
		}
	}
	return match == 1
}
