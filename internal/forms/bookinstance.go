package forms

import (
	"errors"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Submitted field names of the book instance form.
const (
	FieldBook    = "book"
	FieldImprint = "imprint"
	FieldStatus  = "status"
	FieldDueBack = "due_back"
)

const (
	MsgBookRequired    = "Book must be specified"
	MsgImprintRequired = "Imprint must be specified"
	MsgInvalidDate     = "Invalid date"
)

var errInvalidDate = errors.New(MsgInvalidDate)

// BookInstanceForm holds the sanitized values of a submitted book instance form.
type BookInstanceForm struct {
	Book    string
	Imprint string
	Status  string
	// DueBack is nil when the field was empty or failed to parse.
	DueBack *time.Time
}

// ParseBookInstanceForm validates and sanitizes the submitted values.
// Sanitized values are returned even when validation fails so the form can
// be re-rendered with the user's input.
func ParseBookInstanceForm(values url.Values) (BookInstanceForm, Errors) {
	var form BookInstanceForm
	var errs Errors

	book := strings.TrimSpace(values.Get(FieldBook))
	errs = check(errs, FieldBook, book, validation.Required.Error(MsgBookRequired))
	form.Book = Escape(book)

	imprint := strings.TrimSpace(values.Get(FieldImprint))
	errs = check(errs, FieldImprint, imprint, validation.Required.Error(MsgImprintRequired))
	form.Imprint = Escape(imprint)

	form.Status = Escape(values.Get(FieldStatus))

	dueBack := values.Get(FieldDueBack)
	errs = check(errs, FieldDueBack, dueBack,
		validation.When(dueBack != "", validation.By(isISODate)),
	)
	if t, ok := ParseISODate(dueBack); ok {
		form.DueBack = &t
	}

	return form, errs
}

// check runs rules against value and appends the first failure, if any.
func check(errs Errors, field, value string, rules ...validation.Rule) Errors {
	if err := validation.Validate(value, rules...); err != nil {
		errs = append(errs, FieldError{Field: field, Message: err.Error(), Value: value})
	}
	return errs
}

func isISODate(value any) error {
	s, _ := value.(string)
	if _, ok := ParseISODate(s); !ok {
		return errInvalidDate
	}
	return nil
}
