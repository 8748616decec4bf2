package router

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/PizzaTimeVN/pizza-backend/internal/config"
	"github.com/PizzaTimeVN/pizza-backend/internal/server/handlers"
)

// BasicAuth verifies HTTP basic credentials against the configured user
// table and stores the verified username in the request context.
func BasicAuth(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !verifySecret(cfg.Users[user], pass) {
			c.Header("WWW-Authenticate", `Basic realm="pizza-backend"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.Set(handlers.AuthUserKey, user)
		c.Next()
	}
}

// verifySecret compares the presented password against the stored secret:
// bcrypt hash when it carries the "$2" prefix, constant-time equality
// otherwise.
func verifySecret(stored, presented string) bool {
	if stored == "" {
		return false
	}

	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
