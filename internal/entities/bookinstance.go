package entities

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookInstanceStatus string

const (
	StatusAvailable   BookInstanceStatus = "Available"
	StatusMaintenance BookInstanceStatus = "Maintenance"
	StatusLoaned      BookInstanceStatus = "Loaned"
	StatusReserved    BookInstanceStatus = "Reserved"

	// DefaultBookInstanceStatus is applied when a copy is saved without a status.
	DefaultBookInstanceStatus = StatusMaintenance
)

var bookInstanceStatuses = []BookInstanceStatus{
	StatusAvailable,
	StatusMaintenance,
	StatusLoaned,
	StatusReserved,
}

// BookInstanceStatuses returns the closed set of copy statuses in display order.
// The slice is a copy; callers may modify it.
func BookInstanceStatuses() []BookInstanceStatus {
	statuses := make([]BookInstanceStatus, len(bookInstanceStatuses))
	copy(statuses, bookInstanceStatuses)
	return statuses
}

func (s BookInstanceStatus) IsValid() bool {
	for _, status := range bookInstanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// BookInstance is one physical copy of a Book.
type BookInstance struct {
	ID        string             `gorm:"primaryKey;size:36" json:"id"`
	BookID    string             `gorm:"index;size:36;not null" json:"book_id"`
	Book      Book               `gorm:"foreignKey:BookID" json:"book"`
	Imprint   string             `gorm:"size:512;not null" json:"imprint"`
	Status    BookInstanceStatus `gorm:"index;size:20;not null" json:"status"`
	DueBack   *time.Time         `json:"due_back,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (BookInstance) TableName() string {
	return "book_instances"
}

func (b *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ApplyDefaults fills in schema defaults for fields left empty.
func (b *BookInstance) ApplyDefaults() {
	if b.Status == "" {
		b.Status = DefaultBookInstanceStatus
	}
}

// Validate enforces the stored-record invariants. Form-level rules live in
// the forms package.
func (b BookInstance) Validate() error {
	statuses := make([]any, len(bookInstanceStatuses))
	for i, status := range bookInstanceStatuses {
		statuses[i] = status
	}
	return validation.ValidateStruct(&b,
		validation.Field(&b.BookID, validation.Required),
		validation.Field(&b.Imprint, validation.Required),
		validation.Field(&b.Status, validation.Required, validation.In(statuses...)),
	)
}

func (b BookInstance) URL() string {
	return "/catalog/bookinstance/" + b.ID
}

// DueBackYMD formats the due date for date inputs.
func (b BookInstance) DueBackYMD() string {
	return formatDate(b.DueBack, ymdLayout)
}

// DueBackFormatted formats the due date for display.
func (b BookInstance) DueBackFormatted() string {
	return formatDate(b.DueBack, mediumDateLayout)
}

// IsOverdue reports whether a loaned copy is past its due date at now.
func (b BookInstance) IsOverdue(now time.Time) bool {
	return b.Status == StatusLoaned && b.DueBack != nil && b.DueBack.Before(now)
}
