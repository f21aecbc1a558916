// Package books provides database operations for catalog books.
package books

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ssssstella/locallibrary/internal/database"
	"github.com/ssssstella/locallibrary/internal/entities"
)

// Repository handles book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBookTitles returns the ID and title of every book, sorted by title.
func (r *Repository) ListBookTitles(ctx context.Context) ([]entities.BookTitle, error) {
	var titles []entities.BookTitle
	err := r.db.WithContext(ctx).Model(&entities.Book{}).
		Select("id", "title").
		Order("title ASC").
		Find(&titles).Error
	return titles, err
}

// GetBookByID retrieves a book with its author.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// CreateBook stores a new book and assigns its ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("invalid book: %w", err)
	}
	return r.db.WithContext(ctx).Omit("Author").Create(book).Error
}
