package http

import (
	"context"
	"net/http"

	"github.com/ssssstella/locallibrary/internal/entities"
)

// Each controller depends on the narrow interfaces it needs. The database
// repositories satisfy them; tests use hand-written fakes.

// BookInstanceStore provides persistence for book copies.
type BookInstanceStore interface {
	ListBookInstances(ctx context.Context) ([]entities.BookInstance, error)
	GetBookInstance(ctx context.Context, id string) (*entities.BookInstance, error)
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	DeleteBookInstance(ctx context.Context, id string) (bool, error)
}

// BookTitleLister provides the book choices of the copy form.
type BookTitleLister interface {
	ListBookTitles(ctx context.Context) ([]entities.BookTitle, error)
}

// BookInstanceAuditor records successful and failed mutations.
type BookInstanceAuditor interface {
	LogBookInstanceCreated(ctx context.Context, instance *entities.BookInstance, ipAddr string)
	LogBookInstanceUpdated(ctx context.Context, instance *entities.BookInstance, ipAddr string)
	LogBookInstanceDeleted(ctx context.Context, id, ipAddr string, err error)
}

// FlashStore keeps one-shot messages across a redirect.
type FlashStore interface {
	Flash(r *http.Request, message string)
	PopFlash(r *http.Request) string
}
