package http

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ssssstella/locallibrary/internal/entities"
	"github.com/ssssstella/locallibrary/internal/security"
)

// templateFuncs are available to every page template.
var templateFuncs = template.FuncMap{
	// isSelected compares a form selection against an option value. The
	// selection is absent on empty forms.
	"isSelected": func(selected, value any) bool {
		if selected == nil {
			return false
		}
		return fmt.Sprint(selected) == fmt.Sprint(value)
	},
	"statusClass": func(status entities.BookInstanceStatus) string {
		switch status {
		case entities.StatusAvailable:
			return "text-success"
		case entities.StatusMaintenance:
			return "text-danger"
		default:
			return "text-warning"
		}
	},
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.Use(Recovery())

	router.Use(security.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so its context isn't overwritten by CSRF's request replacement
	var flash FlashStore
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		flash = cfg.SessionManager
	}

	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}

	router.Use(ErrorBoundary(cfg.ShowErrorDetails))

	tmpl := template.Must(template.New("").Funcs(templateFuncs).ParseGlob(filepath.Join(cfg.TemplatesPath, "*.html")))
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	readOnly := cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled()
	health := NewHealthController(cfg.Database, cfg.Version, readOnly)
	router.GET("/health", health.Status)

	bookInstances := NewBookInstancesController(cfg.BookInstanceStore, cfg.BookTitleLister, cfg.Auditor, flash)
	bookInstances.RegisterRoutes(router)

	if cfg.AuditReader != nil {
		NewAuditController(cfg.AuditReader).RegisterRoutes(router)
	}
	if cfg.TaskQueue != nil {
		NewTasksController(cfg.TaskQueue).RegisterRoutes(router)
	}

	router.GET("/", redirectTo(bookInstanceListPath))
	router.GET("/catalog", redirectTo(bookInstanceListPath))

	return router
}

func redirectTo(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, location)
	}
}
