package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/ssssstella/locallibrary/internal/maintenance"
	"github.com/ssssstella/locallibrary/internal/security"
)

// pageData adds the values every page template may use to a view model:
// the CSRF hidden field, the pending flash message and the read-only flag.
func pageData(c *gin.Context, flash FlashStore, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}

	data["csrf_field"] = template.HTML(security.CSRFTokenField(c))
	data["read_only"] = c.GetBool(maintenance.ContextKeyReadOnly)
	if flash != nil {
		if message := flash.PopFlash(c.Request); message != "" {
			data["flash"] = message
		}
	}
	return data
}

// setFlash is a no-op when sessions are not configured.
func setFlash(c *gin.Context, flash FlashStore, message string) {
	if flash != nil {
		flash.Flash(c.Request, message)
	}
}
