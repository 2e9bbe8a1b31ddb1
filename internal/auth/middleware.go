package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"codeberg.org/contentstudio/server/internal/logger"
)

// resolves the anonymous client id for every request. an X-Client-ID header wins,
// otherwise the id stored in the session cookie is used, minting one on first visit.
func ClientMiddleware(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(HeaderClientID); ValidClientID(id) {
			c.Set(ContextClientID, id)
			c.Next()
			return
		}

		// a cookie that fails to decode still yields a usable new session
		session, err := store.Get(c.Request, SessionName)
		if err != nil {
			logger.Debug("discarding unreadable session cookie", "error", err)
		}

		id, _ := session.Values[sessionClientKey].(string)
		if !ValidClientID(id) {
			id = NewClientID()
			session.Values[sessionClientKey] = id

			if err := session.Save(c.Request, c.Writer); err != nil {
				logger.ErrorErr(err, "failed to save client session", "client_id", id)
			}
		}

		c.Set(ContextClientID, id)
		c.Next()
	}
}

// extracts client_id from context after ClientMiddleware
func GetClientID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextClientID)
	if id == "" {
		return "", false
	}

	return id, true
}
