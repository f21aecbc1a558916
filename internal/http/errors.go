package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ViewError is the template rendered by ErrorBoundary.
const ViewError = "error"

// HTTPError is an error that carries the status code it should be answered with.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NotFound builds a 404 error with a user-facing message.
func NotFound(message string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: message}
}

// ErrorBoundary turns errors attached with c.Error into a rendered error page.
// Errors without an HTTPError in their chain are treated as 500s and their
// text is only shown when showDetails is set.
func ErrorBoundary(showDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		status := http.StatusInternalServerError
		message := http.StatusText(status)
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Status
			message = httpErr.Message
		}

		event := log.Error()
		if status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request failed")

		// A handler that already answered keeps its response.
		if c.Writer.Written() {
			return
		}

		data := gin.H{
			"title":   message,
			"message": message,
			"status":  status,
		}
		if showDetails {
			data["error"] = err.Error()
		}
		c.HTML(status, ViewError, data)
	}
}
