// Package audit stores and prunes the catalog's audit trail.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ssssstella/locallibrary/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEvents retrieves audit events ordered by most recent first.
func (r *Repository) GetEvents(ctx context.Context, limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []entities.AuditEvent
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// GetEventsForEntity retrieves the history of one record, most recent first.
func (r *Repository) GetEventsForEntity(ctx context.Context, entityType, entityID string) ([]entities.AuditEvent, error) {
	var events []entities.AuditEvent
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

// DeleteOldEvents removes audit events older than the retention period.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
