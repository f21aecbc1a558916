// Package bookinstances provides database operations for book copies.
//
// # Interface Implementation
//
//	var _ http.BookInstanceStore = (*Repository)(nil)
//
// # Usage
//
//	repo := bookinstances.NewRepository(db)
//	instance, err := repo.GetBookInstance(ctx, id)
package bookinstances

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ssssstella/locallibrary/internal/database"
	"github.com/ssssstella/locallibrary/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book instance repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBookInstances returns every copy with its book resolved, in store order.
func (r *Repository) ListBookInstances(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Find(&instances).Error
	return instances, err
}

// GetBookInstance retrieves a copy by ID with its book resolved.
// Returns database.ErrNotFound when no copy has that ID.
func (r *Repository) GetBookInstance(ctx context.Context, id string) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Where("id = ?", id).First(&instance).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &instance, nil
}

// CreateBookInstance stores a new copy and assigns its ID.
func (r *Repository) CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	instance.ApplyDefaults()
	normalizeDueBack(instance)
	if err := instance.Validate(); err != nil {
		return fmt.Errorf("invalid book instance: %w", err)
	}
	return r.db.WithContext(ctx).Omit("Book").Create(instance).Error
}

// UpdateBookInstance overwrites book, imprint, status and due date of the
// copy with instance.ID. A nil DueBack clears the stored date.
// Returns database.ErrNotFound when no copy has that ID.
func (r *Repository) UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	instance.ApplyDefaults()
	normalizeDueBack(instance)
	if err := instance.Validate(); err != nil {
		return fmt.Errorf("invalid book instance: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&entities.BookInstance{}).
		Where("id = ?", instance.ID).
		Updates(map[string]any{
			"book_id":  instance.BookID,
			"imprint":  instance.Imprint,
			"status":   instance.Status,
			"due_back": instance.DueBack,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// DeleteBookInstance removes the copy with the given ID and reports whether a
// row was removed. Deleting an unknown ID is not an error.
func (r *Repository) DeleteBookInstance(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.BookInstance{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListOverdue returns loaned copies whose due date is before now.
func (r *Repository) ListOverdue(ctx context.Context, now time.Time) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").
		Where("status = ? AND due_back IS NOT NULL AND due_back < ?", entities.StatusLoaned, now.UTC()).
		Order("due_back ASC").
		Find(&instances).Error
	return instances, err
}

// normalizeDueBack stores due dates in UTC. sqlite keeps timestamps as text,
// so due_back comparisons only hold when every value shares one offset.
func normalizeDueBack(instance *entities.BookInstance) {
	if instance.DueBack != nil {
		due := instance.DueBack.UTC()
		instance.DueBack = &due
	}
}
