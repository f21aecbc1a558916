package security

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/ssssstella/locallibrary/internal/config"
)

const sessionKeyFlash = "flash"

// SessionManager wraps scs.SessionManager with the catalog's flash messages.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager.
// A non-nil sqlDB must be the sqlite handle from GORM; sessions then survive
// restarts. With a nil sqlDB sessions are kept in memory.
func NewSessionManager(sqlDB *sql.DB, cfg config.Session, secureCookies bool) (*SessionManager, error) {
	sm := scs.New()

	if sqlDB != nil {
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, err
		}
		sm.Store = sqlite3store.New(sqlDB)
	} else {
		sm.Store = memstore.New()
	}

	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // Lax so the post-redirect GET still carries it
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// Flash stores a one-shot message shown on the next rendered page.
func (sm *SessionManager) Flash(r *http.Request, message string) {
	sm.Put(r.Context(), sessionKeyFlash, message)
}

// PopFlash returns and clears the pending flash message.
func (sm *SessionManager) PopFlash(r *http.Request) string {
	return sm.PopString(r.Context(), sessionKeyFlash)
}
