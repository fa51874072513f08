package submission

import (
	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/pkg/sanitizer"
)

// Bind reads form from a parsed body. Text values are cleaned of markup
// and surrounding whitespace. A missing file is not an error here; Validate
// decides whether the form needs one.
func Bind(in *relay.Form, form *Form) *Submission {
	text := func(name string) string {
		return sanitizer.Clean(in.Value(name))
	}

	sub := &Submission{
		Name:        text(FieldName),
		DOB:         text(FieldDOB),
		Email:       text(FieldEmail),
		Phone:       text(FieldPhone),
		Inquiry:     text(FieldInquiry),
		Affiliation: Unaffiliated{},
	}

	if form.Affiliation == AffiliationAlways || checked(in.Value(FieldAffiliated)) {
		sub.Affiliation = Affiliated{
			Institution: text(FieldCollege),
			MemberID:    text(FieldStudentID),
		}
	}

	if _, ok := form.Field(FieldResume); ok {
		if f, err := in.File(FieldResume); err == nil && f.Name != "" && f.Size > 0 {
			sub.File = f
		}
	}

	return sub
}

func checked(v string) bool {
	switch v {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
