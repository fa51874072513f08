package submission_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/internal/submission"
)

func validApplication() *submission.Submission {
	return &submission.Submission{
		Name:        "Alice Smith",
		DOB:         "2000-01-01",
		Affiliation: submission.Affiliated{Institution: "MIT", MemberID: "12345"},
		File:        relay.NewFile("cv.pdf", "application/pdf", 4, bytes.NewReader([]byte("%PDF"))),
	}
}

func validContact() *submission.Submission {
	return &submission.Submission{
		Name:        "Bob Jones",
		Email:       "bob@example.com",
		Phone:       "2368339770",
		Inquiry:     "general",
		Affiliation: submission.Unaffiliated{},
	}
}

func codes(errs submission.ValidationErrors) map[string]submission.ErrorCode {
	m := map[string]submission.ErrorCode{}
	for _, fe := range errs {
		m[fe.Field] = fe.Code
	}
	return m
}

func TestValidate_ApplicationScenario(t *testing.T) {
	t.Parallel()

	sub := &submission.Submission{
		Name:        "Al",
		DOB:         "2000-01-01",
		Affiliation: submission.Affiliated{Institution: "X", MemberID: "ab"},
	}

	errs := submission.Validate(submission.Application, sub)
	require.Equal(t, map[string]submission.ErrorCode{
		"name":      submission.CodeTooShort,
		"studentId": submission.CodeTooShort,
		"resume":    submission.CodeRequired,
	}, codes(errs))

	// field order follows the form
	require.Len(t, errs, 3)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "studentId", errs[1].Field)
	assert.Equal(t, "resume", errs[2].Field)

	assert.Equal(t, "Name must be at least 3 characters long", errs.Message("name"))
	assert.Equal(t, "Student ID must be at least 5 characters long", errs.Message("studentId"))
	assert.Equal(t, "File is required", errs.Message("resume"))
}

func TestValidate_Application(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*submission.Submission)
		want   map[string]submission.ErrorCode
	}{
		{
			name:   "valid",
			mutate: func(*submission.Submission) {},
			want:   map[string]submission.ErrorCode{},
		},
		{
			name:   "three character name is enough",
			mutate: func(s *submission.Submission) { s.Name = "Ada" },
			want:   map[string]submission.ErrorCode{},
		},
		{
			name:   "name length counts runes",
			mutate: func(s *submission.Submission) { s.Name = "Zoë" },
			want:   map[string]submission.ErrorCode{},
		},
		{
			name:   "empty name is required",
			mutate: func(s *submission.Submission) { s.Name = "" },
			want:   map[string]submission.ErrorCode{"name": submission.CodeRequired},
		},
		{
			name:   "missing dob",
			mutate: func(s *submission.Submission) { s.DOB = "" },
			want:   map[string]submission.ErrorCode{"dob": submission.CodeRequired},
		},
		{
			name:   "impossible dob",
			mutate: func(s *submission.Submission) { s.DOB = "2000-02-30" },
			want:   map[string]submission.ErrorCode{"dob": submission.CodeInvalidFormat},
		},
		{
			name: "missing college",
			mutate: func(s *submission.Submission) {
				s.Affiliation = submission.Affiliated{MemberID: "12345"}
			},
			want: map[string]submission.ErrorCode{"college": submission.CodeRequired},
		},
		{
			name: "missing student id",
			mutate: func(s *submission.Submission) {
				s.Affiliation = submission.Affiliated{Institution: "MIT"}
			},
			want: map[string]submission.ErrorCode{"studentId": submission.CodeRequired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sub := validApplication()
			tt.mutate(sub)
			assert.Equal(t, tt.want, codes(submission.Validate(submission.Application, sub)))
		})
	}
}

func TestValidate_Contact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*submission.Submission)
		want   map[string]submission.ErrorCode
	}{
		{
			name:   "valid without file or affiliation",
			mutate: func(*submission.Submission) {},
			want:   map[string]submission.ErrorCode{},
		},
		{
			name:   "bad email",
			mutate: func(s *submission.Submission) { s.Email = "bob@example" },
			want:   map[string]submission.ErrorCode{"email": submission.CodeInvalidFormat},
		},
		{
			name:   "phone with nine digits",
			mutate: func(s *submission.Submission) { s.Phone = "236833977" },
			want:   map[string]submission.ErrorCode{"phone": submission.CodeInvalidFormat},
		},
		{
			name:   "phone with formatting",
			mutate: func(s *submission.Submission) { s.Phone = "236-833-9770" },
			want:   map[string]submission.ErrorCode{"phone": submission.CodeInvalidFormat},
		},
		{
			name:   "unknown inquiry",
			mutate: func(s *submission.Submission) { s.Inquiry = "refund" },
			want:   map[string]submission.ErrorCode{"inquiry": submission.CodeInvalidChoice},
		},
		{
			name:   "no inquiry",
			mutate: func(s *submission.Submission) { s.Inquiry = "" },
			want:   map[string]submission.ErrorCode{"inquiry": submission.CodeRequired},
		},
		{
			name:   "affiliated needs institution and member id",
			mutate: func(s *submission.Submission) { s.Affiliation = submission.Affiliated{MemberID: "abc"} },
			want: map[string]submission.ErrorCode{
				"college":   submission.CodeRequired,
				"studentId": submission.CodeTooShort,
			},
		},
		{
			name: "affiliated and complete",
			mutate: func(s *submission.Submission) {
				s.Affiliation = submission.Affiliated{Institution: "UBC", MemberID: "A12345"}
			},
			want: map[string]submission.ErrorCode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sub := validContact()
			tt.mutate(sub)
			errs := submission.Validate(submission.Contact, sub)
			assert.Equal(t, tt.want, codes(errs))
		})
	}
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := submission.ValidationErrors{
		{Field: "name", Code: submission.CodeTooShort, Message: "too short"},
		{Field: "resume", Code: submission.CodeRequired, Message: "File is required"},
	}

	assert.Equal(t, "too short", errs.Message("name"))
	assert.Empty(t, errs.Message("dob"))
	assert.EqualError(t, errs, "submission: name: too short; resume: File is required")
}

func TestLookup(t *testing.T) {
	t.Parallel()

	f, ok := submission.Lookup("application")
	require.True(t, ok)
	assert.Same(t, submission.Application, f)

	_, ok = submission.Lookup("survey")
	assert.False(t, ok)

	resume, ok := submission.Application.Field(submission.FieldResume)
	require.True(t, ok)
	assert.Equal(t, ".pdf,image/*,.xls,.xlsx,.csv", resume.Accept)
}
