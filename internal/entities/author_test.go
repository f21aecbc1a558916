package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthor_Name(t *testing.T) {
	t.Run("joins family and first name", func(t *testing.T) {
		a := Author{FirstName: "Isaac", FamilyName: "Asimov"}
		assert.Equal(t, "Asimov, Isaac", a.Name())
	})

	t.Run("empty when first name missing", func(t *testing.T) {
		a := Author{FamilyName: "Asimov"}
		assert.Equal(t, "", a.Name())
	})

	t.Run("empty when family name missing", func(t *testing.T) {
		a := Author{FirstName: "Isaac"}
		assert.Equal(t, "", a.Name())
	})
}

func TestAuthor_URL(t *testing.T) {
	a := Author{ID: "abc-123"}
	assert.Equal(t, "/catalog/author/abc-123", a.URL())
}

func TestAuthor_YMD(t *testing.T) {
	a := Author{DateOfBirth: date(1920, time.January, 2)}

	assert.Equal(t, "1920-01-02", a.DateOfBirthYMD())
	assert.Equal(t, "", a.DateOfDeathYMD())
}

func TestAuthor_Lifespan(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{
			name:   "both dates",
			author: Author{DateOfBirth: date(1920, time.January, 2), DateOfDeath: date(1992, time.April, 6)},
			want:   "Jan 2, 1920 - Apr 6, 1992",
		},
		{
			name:   "still living",
			author: Author{DateOfBirth: date(1948, time.September, 20)},
			want:   "Sep 20, 1948 - ",
		},
		{
			name:   "no dates",
			author: Author{},
			want:   " - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.Lifespan())
		})
	}
}

func TestAuthor_Validate(t *testing.T) {
	t.Run("accepts complete author", func(t *testing.T) {
		a := Author{FirstName: "Ben", FamilyName: "Bova"}
		assert.NoError(t, a.Validate())
	})

	t.Run("rejects missing names", func(t *testing.T) {
		err := Author{}.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "first_name")
		assert.Contains(t, err.Error(), "family_name")
	})

	t.Run("rejects names over 100 characters", func(t *testing.T) {
		long := make([]rune, 101)
		for i := range long {
			long[i] = 'a'
		}
		a := Author{FirstName: string(long), FamilyName: "Bova"}
		assert.Error(t, a.Validate())
	})
}
