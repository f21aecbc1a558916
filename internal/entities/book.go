package entities

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	AuthorID  string    `gorm:"index;size:36" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string    `gorm:"type:text" json:"summary,omitempty"`
	ISBN      string    `gorm:"size:20" json:"isbn,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required),
		validation.Field(&b.AuthorID, validation.Required),
	)
}

func (b Book) URL() string {
	return "/catalog/book/" + b.ID
}

// BookTitle is the projection used to populate book pickers.
type BookTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
