package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/ssssstella/locallibrary/internal/entities"
)

// OverdueLister finds loaned copies whose due date has passed.
type OverdueLister interface {
	ListOverdue(ctx context.Context, now time.Time) ([]entities.BookInstance, error)
}

// OverdueReportTask logs every loaned copy that is past its due date.
type OverdueReportTask struct{}

// Config returns the queue configuration for overdue reports.
func (t OverdueReportTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_report",
		MaxAttempts: 2,
		Backoff:     10 * time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
		},
	}
}

// OverdueReportProcessor creates a processor function for OverdueReportTask.
// now is injectable for tests.
func OverdueReportProcessor(lister OverdueLister, now func() time.Time) backlite.QueueProcessor[OverdueReportTask] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, _ OverdueReportTask) error {
		if lister == nil {
			return errors.New("overdue lister not configured")
		}

		at := now()
		overdue, err := lister.ListOverdue(ctx, at)
		if err != nil {
			return fmt.Errorf("list overdue copies: %w", err)
		}

		for _, instance := range overdue {
			event := log.Info().
				Str("bookinstance_id", instance.ID).
				Str("title", instance.Book.Title).
				Str("imprint", instance.Imprint).
				Str("due_back", instance.DueBackYMD())
			if instance.DueBack != nil {
				event = event.Dur("overdue_by", at.Sub(*instance.DueBack))
			}
			event.Msg("Book copy overdue")
		}
		log.Info().Int("count", len(overdue)).Msg("Overdue report finished")
		return nil
	}
}

// NewOverdueReportQueue creates a backlite queue for overdue reports.
func NewOverdueReportQueue(lister OverdueLister) backlite.Queue {
	return backlite.NewQueue(OverdueReportProcessor(lister, nil))
}
