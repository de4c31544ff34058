package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionKey is the gin context key holding the browser session ID
const SessionKey = "sessionID"

// RequestLogger logs one line per request
func RequestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := lgr.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = lgr.Error()
		case status >= http.StatusBadRequest:
			event = lgr.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Str("ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}

// DraftSession ensures every browser carries a session cookie and exposes
// its ID under SessionKey. Unparseable cookie values are replaced.
func DraftSession(cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, 0, "/", "", secure, true)
		}
		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the browser session ID set by DraftSession
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}

// RequireData aborts API requests while the initial data load has failed
func RequireData(loadErr func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := loadErr(); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
