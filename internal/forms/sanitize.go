// Package forms validates and sanitizes submitted HTML form fields.
//
// Each form is processed field by field in declaration order, so the
// resulting error list is stable and can be rendered as-is.
package forms

import "strings"

// FieldError describes one failed rule on a submitted field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// Errors is an ordered list of field errors.
type Errors []FieldError

func (e Errors) Error() string {
	messages := make([]string, len(e))
	for i, fe := range e {
		messages[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(messages, "; ")
}

// HasField reports whether any error is attached to field.
func (e Errors) HasField(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces HTML-significant characters with entities.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}
