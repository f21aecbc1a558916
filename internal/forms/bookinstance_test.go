package forms

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookInstanceForm(t *testing.T) {
	t.Run("valid submission without due date", func(t *testing.T) {
		form, errs := ParseBookInstanceForm(url.Values{
			"book":    {"123"},
			"imprint": {"First Ed."},
			"status":  {"Available"},
		})

		assert.Empty(t, errs)
		assert.Equal(t, "123", form.Book)
		assert.Equal(t, "First Ed.", form.Imprint)
		assert.Equal(t, "Available", form.Status)
		assert.Nil(t, form.DueBack)
	})

	t.Run("valid submission with due date", func(t *testing.T) {
		form, errs := ParseBookInstanceForm(url.Values{
			"book":     {"123"},
			"imprint":  {"First Ed."},
			"status":   {"Loaned"},
			"due_back": {"2024-06-30"},
		})

		assert.Empty(t, errs)
		require.NotNil(t, form.DueBack)
		assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), *form.DueBack)
	})

	t.Run("trims book and imprint", func(t *testing.T) {
		form, errs := ParseBookInstanceForm(url.Values{
			"book":    {"  123  "},
			"imprint": {"\tFirst Ed.\n"},
		})

		assert.Empty(t, errs)
		assert.Equal(t, "123", form.Book)
		assert.Equal(t, "First Ed.", form.Imprint)
	})

	t.Run("missing book and imprint are reported in field order", func(t *testing.T) {
		_, errs := ParseBookInstanceForm(url.Values{
			"book":    {"   "},
			"imprint": {""},
			"status":  {"Available"},
		})

		require.Len(t, errs, 2)
		assert.Equal(t, FieldError{Field: FieldBook, Message: MsgBookRequired, Value: ""}, errs[0])
		assert.Equal(t, FieldError{Field: FieldImprint, Message: MsgImprintRequired, Value: ""}, errs[1])
	})

	t.Run("invalid due date keeps other sanitized values", func(t *testing.T) {
		form, errs := ParseBookInstanceForm(url.Values{
			"book":     {"  123  "},
			"imprint":  {"First Ed."},
			"status":   {"Loaned"},
			"due_back": {"2024-13-40"},
		})

		require.Len(t, errs, 1)
		assert.Equal(t, FieldDueBack, errs[0].Field)
		assert.Equal(t, MsgInvalidDate, errs[0].Message)
		assert.Equal(t, "2024-13-40", errs[0].Value)
		assert.True(t, errs.HasField(FieldDueBack))
		assert.False(t, errs.HasField(FieldBook))

		assert.Equal(t, "123", form.Book)
		assert.Nil(t, form.DueBack)
	})

	t.Run("impossible calendar day is rejected", func(t *testing.T) {
		_, errs := ParseBookInstanceForm(url.Values{
			"book":     {"123"},
			"imprint":  {"First Ed."},
			"due_back": {"2023-02-29"},
		})

		assert.True(t, errs.HasField(FieldDueBack))
	})

	t.Run("escapes markup", func(t *testing.T) {
		form, errs := ParseBookInstanceForm(url.Values{
			"book":    {"123"},
			"imprint": {`<b>"Tom" & 'Jerry'</b>`},
			"status":  {"<Loaned>"},
		})

		assert.Empty(t, errs)
		assert.Equal(t, "&lt;b&gt;&quot;Tom&quot; &amp; &#x27;Jerry&#x27;&lt;&#x2F;b&gt;", form.Imprint)
		assert.Equal(t, "&lt;Loaned&gt;", form.Status)
	})

	t.Run("status is not trimmed or required", func(t *testing.T) {
		form, errs := ParseBookInstanceForm(url.Values{
			"book":    {"123"},
			"imprint": {"First Ed."},
			"status":  {" Loaned "},
		})

		assert.Empty(t, errs)
		assert.Equal(t, " Loaned ", form.Status)
	})
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"2024-01-15", true},
		{"20240115", true},
		{"2024", true},
		{"2024-05", true},
		{"2024-W01", true},
		{"2024-W01-3", true},
		{"2024W013", true},
		{"2024-032", true},
		{"2024032", true},
		{"2024-01-15T10", true},
		{"2024-01-15T10:30", true},
		{"2024-01-15T1030", true},
		{"2024-01-15T10:30Z", true},
		{"2024-01-15T10:30+02:00", true},
		{"2024-01-15T10:30:00", true},
		{"2024-01-15T10:30:00Z", true},
		{"2024-01-15T10:30:00.123+02:00", true},
		{"2024-01-15T10:30:00,5-0800", true},
		{"2024-01-15 10:00", true},
		{"2024-01-15T24:00", true},
		{"2024-13-40", false},
		{"2024-02-30", false},
		{"2023-02-29", false},
		{"202401", false},
		{"2024-0115", false},
		{"2024-W54", false},
		{"2023-W53", false},
		{"2024-W01-8", false},
		{"2023-366", false},
		{"2024-000", false},
		{"2024T10:00", false},
		{"2024-01-15T25:00", false},
		{"2024-01-15T24:30", false},
		{"2024-01-15T10:60", false},
		{"2024-01-15T10:30:0", false},
		{"2024-01-15T10:30+24:00", false},
		{"2024-01-15T", false},
		{"15/01/2024", false},
		{"yesterday", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, ok := ParseISODate(tt.value)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseISODate_Values(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2024", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-05", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-W01", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2021-W01-1", time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)},
		{"2020-W53-7", time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC)},
		{"2024-060", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"2024-05-01 10:00", time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-05-01T10:30:15.25Z", time.Date(2024, time.May, 1, 10, 30, 15, 250_000_000, time.UTC)},
		{"2024-05-01T10,5", time.Date(2024, time.May, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-05-01T24:00", time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseISODate(tt.value)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseISODate_NormalizesToUTC(t *testing.T) {
	got, ok := ParseISODate("2024-06-30T01:00+02:00")
	require.True(t, ok)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2024, time.June, 29, 23, 0, 0, 0, time.UTC), got)

	got, ok = ParseISODate("2024-06-29T21:00:00-08:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 30, 5, 0, 0, 0, time.UTC), got)
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{
		{Field: FieldBook, Message: MsgBookRequired},
		{Field: FieldDueBack, Message: MsgInvalidDate},
	}
	assert.Equal(t, "book: Book must be specified; due_back: Invalid date", errs.Error())
}
