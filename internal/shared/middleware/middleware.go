package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionCookie     = "tvoja_karta_session"
	sessionContextKey = "session_id"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// Session resolves the storefront session from the X-Session-ID header or the
// session cookie, minting a new one when neither carries a valid UUID.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if !isValidSessionID(sessionID) {
			sessionID, _ = c.Cookie(SessionCookie)
		}
		if !isValidSessionID(sessionID) {
			sessionID = uuid.NewString()
		}

		c.Set(sessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, sessionCookieMaxAge, "/", "", false, true)

		c.Next()
	}
}

// GetSessionID returns the session resolved by Session, or "" when the
// middleware did not run.
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionContextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func isValidSessionID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
