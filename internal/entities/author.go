package entities

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// ymdLayout matches the value format of an HTML date input.
	ymdLayout = "2006-01-02"
	// mediumDateLayout is the en-US medium date, e.g. "Oct 14, 1983".
	mediumDateLayout = "Jan 2, 2006"
)

type Author struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	FamilyName  string     `gorm:"size:100;not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Validate checks the stored fields before they are written.
func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FirstName, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&a.FamilyName, validation.Required, validation.RuneLength(1, 100)),
	)
}

// Name returns "family, first", or an empty string unless both parts are set.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) URL() string {
	return "/catalog/author/" + a.ID
}

func (a Author) DateOfBirthYMD() string {
	return formatDate(a.DateOfBirth, ymdLayout)
}

func (a Author) DateOfDeathYMD() string {
	return formatDate(a.DateOfDeath, ymdLayout)
}

// Lifespan renders both dates as medium dates joined by " - ".
// A missing date leaves its side of the range empty.
func (a Author) Lifespan() string {
	return formatDate(a.DateOfBirth, mediumDateLayout) + " - " + formatDate(a.DateOfDeath, mediumDateLayout)
}

func formatDate(t *time.Time, layout string) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
