package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionCookie carries the opaque per-browser session id. All cart and auth
// state is keyed by it in the session store.
const (
	sessionCookie     = "soupshop_session"
	sessionContextKey = "sessionID"
	sessionMaxAge     = 30 * 24 * 60 * 60
)

// sessionMiddleware reads the session cookie, issuing a fresh id on first
// contact, and exposes the id to handlers via the gin context.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionContextKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
