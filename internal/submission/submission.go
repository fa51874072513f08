package submission

import "github.com/dmitrymomot/intake/internal/relay"

// Affiliation is either Unaffiliated or Affiliated.
type Affiliation interface {
	affiliation()
}

// Unaffiliated is a plain submission without institution details.
type Unaffiliated struct{}

// Affiliated carries the institution and the member id issued by it.
type Affiliated struct {
	Institution string
	MemberID    string
}

func (Unaffiliated) affiliation() {}
func (Affiliated) affiliation()   {}

// Submission is one bound form post. It lives for a single request.
type Submission struct {
	Affiliation Affiliation
	File        *relay.File
	Name        string
	DOB         string
	Email       string
	Phone       string
	Inquiry     string
}

// IsAffiliated reports whether the submission carries institution details.
func (s *Submission) IsAffiliated() bool {
	_, ok := s.Affiliation.(Affiliated)
	return ok
}

// Value returns the text value of the input named field.
func (s *Submission) Value(field string) string {
	if s == nil {
		return ""
	}
	switch field {
	case FieldName:
		return s.Name
	case FieldDOB:
		return s.DOB
	case FieldEmail:
		return s.Email
	case FieldPhone:
		return s.Phone
	case FieldInquiry:
		return s.Inquiry
	case FieldAffiliated:
		if s.IsAffiliated() {
			return "on"
		}
	case FieldCollege:
		if a, ok := s.Affiliation.(Affiliated); ok {
			return a.Institution
		}
	case FieldStudentID:
		if a, ok := s.Affiliation.(Affiliated); ok {
			return a.MemberID
		}
	case FieldResume:
		if s.File != nil {
			return s.File.Name
		}
	}
	return ""
}

// Close releases the attached file.
func (s *Submission) Close() error {
	if s == nil {
		return nil
	}
	return s.File.Close()
}
