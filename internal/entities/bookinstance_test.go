package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookInstanceStatuses(t *testing.T) {
	statuses := BookInstanceStatuses()
	assert.Equal(t, []BookInstanceStatus{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}, statuses)

	// Callers get their own copy.
	statuses[0] = "Lost"
	assert.Equal(t, StatusAvailable, BookInstanceStatuses()[0])
}

func TestBookInstanceStatus_IsValid(t *testing.T) {
	assert.True(t, StatusLoaned.IsValid())
	assert.False(t, BookInstanceStatus("Lost").IsValid())
	assert.False(t, BookInstanceStatus("").IsValid())
}

func TestBookInstance_Validate(t *testing.T) {
	valid := BookInstance{BookID: "book-1", Imprint: "First Ed.", Status: StatusAvailable}
	assert.NoError(t, valid.Validate())

	unknownStatus := valid
	unknownStatus.Status = "Lost"
	assert.Error(t, unknownStatus.Validate())

	missingBook := valid
	missingBook.BookID = ""
	assert.Error(t, missingBook.Validate())
}

func TestBookInstance_ApplyDefaults(t *testing.T) {
	b := BookInstance{}
	b.ApplyDefaults()
	assert.Equal(t, StatusMaintenance, b.Status)

	b = BookInstance{Status: StatusReserved}
	b.ApplyDefaults()
	assert.Equal(t, StatusReserved, b.Status)
}

func TestBookInstance_URL(t *testing.T) {
	b := BookInstance{ID: "copy-1"}
	assert.Equal(t, "/catalog/bookinstance/copy-1", b.URL())
}

func TestBookInstance_DueBack(t *testing.T) {
	b := BookInstance{DueBack: date(2024, time.March, 5)}
	assert.Equal(t, "2024-03-05", b.DueBackYMD())
	assert.Equal(t, "Mar 5, 2024", b.DueBackFormatted())

	assert.Equal(t, "", BookInstance{}.DueBackYMD())
}

func TestBookInstance_IsOverdue(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, BookInstance{Status: StatusLoaned, DueBack: date(2024, time.May, 1)}.IsOverdue(now))
	assert.False(t, BookInstance{Status: StatusLoaned, DueBack: date(2024, time.July, 1)}.IsOverdue(now))
	assert.False(t, BookInstance{Status: StatusAvailable, DueBack: date(2024, time.May, 1)}.IsOverdue(now))
	assert.False(t, BookInstance{Status: StatusLoaned}.IsOverdue(now))
}
