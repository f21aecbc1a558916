// Package authors provides database operations for catalog authors.
package authors

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ssssstella/locallibrary/internal/database"
	"github.com/ssssstella/locallibrary/internal/entities"
)

// Repository handles author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthor stores a new author and assigns its ID.
func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) error {
	if err := author.Validate(); err != nil {
		return fmt.Errorf("invalid author: %w", err)
	}
	return r.db.WithContext(ctx).Create(author).Error
}

// GetAuthorByID retrieves an author by ID.
func (r *Repository) GetAuthorByID(ctx context.Context, id string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&author).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &author, nil
}

// ListAuthors returns all authors ordered by family name.
func (r *Repository) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("family_name ASC").Find(&authors).Error
	return authors, err
}
