// Package audit records create, update and delete operations on catalog
// records into the audit_events table.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/ssssstella/locallibrary/internal/database/audit"
	"github.com/ssssstella/locallibrary/internal/entities"
)

const EntityBookInstance = "bookinstance"

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// The write outlives the request, so cancellation of ctx is ignored.
func (s *Service) LogAsync(ctx context.Context, event *entities.AuditEvent) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Error().Err(err).
				Str("action", string(event.Action)).
				Str("entity_id", event.EntityID).
				Msg("Failed to log audit event")
		}
	}()
}

// Wait blocks until all pending asynchronous writes are done.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogBookInstanceCreated records a new copy.
func (s *Service) LogBookInstanceCreated(ctx context.Context, instance *entities.BookInstance, ipAddr string) {
	s.LogAsync(ctx, bookInstanceEvent(entities.AuditActionCreate, instance.ID, instance, ipAddr))
}

// LogBookInstanceUpdated records an in-place overwrite of a copy.
func (s *Service) LogBookInstanceUpdated(ctx context.Context, instance *entities.BookInstance, ipAddr string) {
	s.LogAsync(ctx, bookInstanceEvent(entities.AuditActionUpdate, instance.ID, instance, ipAddr))
}

// LogBookInstanceDeleted records a deletion that removed a copy or failed.
// The row is gone by the time this runs, so only the id is known.
func (s *Service) LogBookInstanceDeleted(ctx context.Context, id, ipAddr string, err error) {
	event := bookInstanceEvent(entities.AuditActionDelete, id, nil, ipAddr)
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(ctx, event)
}

// GetEvents retrieves the most recent audit events.
func (s *Service) GetEvents(ctx context.Context, limit int) ([]entities.AuditEvent, error) {
	return s.repo.GetEvents(ctx, limit)
}

// History returns all recorded events for one copy.
func (s *Service) History(ctx context.Context, id string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(ctx, EntityBookInstance, id)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(ctx, retention)
}

func bookInstanceEvent(action entities.AuditAction, id string, instance *entities.BookInstance, ipAddr string) *entities.AuditEvent {
	event := &entities.AuditEvent{
		Action:      action,
		EntityType:  EntityBookInstance,
		EntityID:    id,
		Description: fmt.Sprintf("%s book instance %s", action, id),
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}

	if instance != nil {
		metadata := map[string]any{
			"book_id": instance.BookID,
			"imprint": instance.Imprint,
			"status":  instance.Status,
		}
		if instance.DueBack != nil {
			metadata["due_back"] = instance.DueBackYMD()
		}
		if mdBytes, e := json.Marshal(metadata); e == nil {
			event.Metadata = string(mdBytes)
		}
	}

	return event
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - len("...")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
