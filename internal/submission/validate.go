package submission

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ErrorCode classifies a field failure.
type ErrorCode string

const (
	CodeRequired      ErrorCode = "required"
	CodeTooShort      ErrorCode = "too_short"
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeInvalidChoice ErrorCode = "invalid_choice"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string
	Code    ErrorCode
	Message string
}

// ValidationErrors lists failures in form field order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "submission: " + strings.Join(msgs, "; ")
}

// Get returns the failure for field.
func (v ValidationErrors) Get(field string) (FieldError, bool) {
	for _, fe := range v {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Message returns the message for field, or "".
func (v ValidationErrors) Message(field string) string {
	fe, _ := v.Get(field)
	return fe.Message
}

const dateLayout = "2006-01-02"

// Validate checks sub against form. It has no side effects and reports at
// most one failure per field.
func Validate(form *Form, sub *Submission) ValidationErrors {
	var errs ValidationErrors
	affiliated := sub.IsAffiliated()

	for _, f := range form.Fields {
		if f.Conditional && !affiliated {
			continue
		}
		if code, ok := check(f, sub); !ok {
			errs = append(errs, FieldError{Field: f.Name, Code: code, Message: message(f, code)})
		}
	}
	return errs
}

func check(f Field, sub *Submission) (ErrorCode, bool) {
	if f.Kind == KindFile {
		if f.Required && sub.File == nil {
			return CodeRequired, false
		}
		return "", true
	}
	if f.Kind == KindCheckbox {
		return "", true
	}

	v := sub.Value(f.Name)
	if v == "" {
		if f.Required {
			return CodeRequired, false
		}
		return "", true
	}

	if f.MinLen > 0 && utf8.RuneCountInString(v) < f.MinLen {
		return CodeTooShort, false
	}
	if f.Pattern != nil && !f.Pattern.MatchString(v) {
		return CodeInvalidFormat, false
	}
	if f.Kind == KindDate {
		if _, err := time.Parse(dateLayout, v); err != nil {
			return CodeInvalidFormat, false
		}
	}
	if len(f.Choices) > 0 && !hasChoice(f.Choices, v) {
		return CodeInvalidChoice, false
	}
	return "", true
}

func message(f Field, code ErrorCode) string {
	if code == CodeInvalidFormat && f.PatternMessage != "" {
		return f.PatternMessage
	}
	return f.Message
}

func hasChoice(choices []Choice, v string) bool {
	for _, c := range choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

func choiceLabel(choices []Choice, v string) string {
	for _, c := range choices {
		if c.Value == v {
			return c.Label
		}
	}
	return v
}
