package security

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// flashWriter saves pending session changes, in practice a queued flash
// message, before the response header goes out.
type flashWriter struct {
	gin.ResponseWriter
	sm        *SessionManager
	ctx       context.Context
	committed bool
}

// commit runs at most once per request.
func (w *flashWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true

	switch w.sm.Status(w.ctx) {
	case scs.Modified:
		token, expiry, err := w.sm.Commit(w.ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to commit session")
			return
		}
		w.sm.WriteSessionCookie(w.ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sm.WriteSessionCookie(w.ctx, w.ResponseWriter, "", time.Time{})
	}
}

func (w *flashWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *flashWriter) WriteHeaderNow() {
	w.commit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *flashWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *flashWriter) WriteString(s string) (int, error) {
	w.commit()
	return w.ResponseWriter.WriteString(s)
}

// SessionLoadSave loads the session named by the request cookie and saves it
// when the handler responds. Handlers that never write still get the cookie.
func (sm *SessionManager) SessionLoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load session")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		w := &flashWriter{ResponseWriter: c.Writer, sm: sm, ctx: ctx}
		c.Writer = w
		c.Next()
		w.commit()
	}
}
