package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ssssstella/locallibrary/internal/entities"
)

const (
	defaultAuditLimit = 25
	maxAuditLimit     = 100
)

// AuditReader reads the recorded copy mutations.
type AuditReader interface {
	GetEvents(ctx context.Context, limit int) ([]entities.AuditEvent, error)
	History(ctx context.Context, id string) ([]entities.AuditEvent, error)
}

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

func (ac *AuditController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/api/audit", ac.GetAuditEvents)
	router.GET("/api/bookinstances/:id/history", ac.GetBookInstanceHistory)
}

// GetAuditEvents returns the most recent audit events as JSON
// GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit < 1 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	events, err := ac.reader.GetEvents(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load audit events")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load audit events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"limit":  limit,
		"count":  len(events),
	})
}

// GetBookInstanceHistory returns every recorded change of one copy, most recent first.
// A copy without events yields an empty list; deleted copies keep their history.
// GET /api/bookinstances/:id/history
func (ac *AuditController) GetBookInstanceHistory(c *gin.Context) {
	id := c.Param("id")

	events, err := ac.reader.History(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("bookinstance_id", id).Msg("Failed to load copy history")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load history",
		})
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, gin.H{
		"bookinstance_id": id,
		"events":          events,
	})
}
