package http

import (
	"github.com/ssssstella/locallibrary/internal/database"
	"github.com/ssssstella/locallibrary/internal/maintenance"
	"github.com/ssssstella/locallibrary/internal/security"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database          *database.Database
	BookInstanceStore BookInstanceStore
	BookTitleLister   BookTitleLister
	Auditor           BookInstanceAuditor // optional
	AuditReader       AuditReader         // optional, enables /api/audit
	TaskQueue         TaskQueue           // optional, enables /api/tasks

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Security; an empty CSRFSecret disables CSRF protection.
	CSRFSecret     []byte
	SecureCookies  bool
	SessionManager *security.SessionManager // optional, enables flash messages

	// Read-only mode (optional)
	ReadOnly *maintenance.Middleware

	// ShowErrorDetails exposes internal error text on the error page.
	ShowErrorDetails bool

	// Application info
	Version string
}
