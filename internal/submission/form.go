// Package submission binds, validates and delivers form submissions.
//
// A submission is validated against its Form, its optional file is passed
// to an Uploader and the resulting parameter bag is handed to a
// notify.Notifier. Nothing is stored.
package submission

import "regexp"

// Form names.
const (
	FormApplication = "application"
	FormContact     = "contact"
)

// FieldKind selects the input control a field is rendered with.
type FieldKind uint8

const (
	KindText FieldKind = iota
	KindDate
	KindEmail
	KindTel
	KindSelect
	KindCheckbox
	KindFile
)

// Choice is one option of a select field.
type Choice struct {
	Value string
	Label string
}

// Field describes one input and the checks applied to it.
type Field struct {
	Pattern     *regexp.Regexp
	Name        string // form input name
	Param       string // key in the notification parameter bag, empty for none
	Label       string
	Placeholder string
	Accept      string // file inputs only

	// Message is shown for any failure of this field unless a more
	// specific one is set below.
	Message        string
	PatternMessage string

	Choices []Choice
	MinLen  int
	Kind    FieldKind

	Required bool
	// Conditional fields apply only to affiliated submissions.
	Conditional bool
}

// AffiliationMode says how a form decides between the affiliation variants.
type AffiliationMode uint8

const (
	// AffiliationAlways makes every submission affiliated.
	AffiliationAlways AffiliationMode = iota
	// AffiliationOptional lets the submitter tick a checkbox.
	AffiliationOptional
)

// Form is a named set of fields.
type Form struct {
	Name        string
	Title       string
	Description string
	Fields      []Field
	Affiliation AffiliationMode
}

// Field returns the field named name.
func (f *Form) Field(name string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld, true
		}
	}
	return Field{}, false
}

// Input names shared by the forms.
const (
	FieldName       = "name"
	FieldDOB        = "dob"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldInquiry    = "inquiry"
	FieldAffiliated = "affiliated"
	FieldCollege    = "college"
	FieldStudentID  = "studentId"
	FieldResume     = "resume"
)

// AcceptedFiles is the client-side hint for the file picker. The server
// allow-list is enforced by the relay.
const AcceptedFiles = ".pdf,image/*,.xls,.xlsx,.csv"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

var nameField = Field{
	Name:        FieldName,
	Param:       "from_name",
	Label:       "Name",
	Placeholder: "Your name",
	Kind:        KindText,
	Required:    true,
	MinLen:      3,
	Message:     "Name must be at least 3 characters long",
}

func collegeField(conditional bool) Field {
	return Field{
		Name:        FieldCollege,
		Param:       "college",
		Label:       "College/University",
		Placeholder: "Your college/university",
		Kind:        KindText,
		Required:    true,
		Message:     "College/University is required",
		Conditional: conditional,
	}
}

func studentIDField(conditional bool) Field {
	return Field{
		Name:        FieldStudentID,
		Param:       "student_id",
		Label:       "Student ID",
		Placeholder: "Your student ID",
		Kind:        KindText,
		Required:    true,
		MinLen:      5,
		Message:     "Student ID must be at least 5 characters long",
		Conditional: conditional,
	}
}

func resumeField(required bool) Field {
	return Field{
		Name:     FieldResume,
		Param:    "resume",
		Label:    "File (PDF, Images)",
		Kind:     KindFile,
		Accept:   AcceptedFiles,
		Required: required,
		Message:  "File is required",
	}
}

// Application is the applicant form on the landing page.
var Application = &Form{
	Name:        FormApplication,
	Title:       "User Information Form",
	Description: "Submit your details and file to get started",
	Affiliation: AffiliationAlways,
	Fields: []Field{
		nameField,
		{
			Name:           FieldDOB,
			Param:          "dob",
			Label:          "Date of Birth",
			Kind:           KindDate,
			Required:       true,
			Message:        "Date of Birth is required",
			PatternMessage: "Date of Birth must be a valid date",
		},
		collegeField(false),
		studentIDField(false),
		resumeField(true),
	},
}

// InquiryChoices are the options of the contact form's inquiry select.
var InquiryChoices = []Choice{
	{Value: "general", Label: "General question"},
	{Value: "admissions", Label: "Admissions"},
	{Value: "partnership", Label: "Partnership"},
	{Value: "other", Label: "Other"},
}

// Contact is the general contact form.
var Contact = &Form{
	Name:        FormContact,
	Title:       "Contact Us",
	Description: "Leave your details and we will get back to you",
	Affiliation: AffiliationOptional,
	Fields: []Field{
		nameField,
		{
			Name:           FieldEmail,
			Param:          "email",
			Label:          "Email",
			Placeholder:    "you@example.com",
			Kind:           KindEmail,
			Required:       true,
			Pattern:        emailPattern,
			Message:        "Email is required",
			PatternMessage: "Please enter a valid email address",
		},
		{
			Name:           FieldPhone,
			Param:          "phone",
			Label:          "Phone",
			Placeholder:    "10 digit phone number",
			Kind:           KindTel,
			Required:       true,
			Pattern:        phonePattern,
			Message:        "Phone number is required",
			PatternMessage: "Phone number must be exactly 10 digits",
		},
		{
			Name:     FieldInquiry,
			Param:    "inquiry",
			Label:    "Inquiry",
			Kind:     KindSelect,
			Required: true,
			Choices:  InquiryChoices,
			Message:  "Please select an inquiry type",
		},
		{
			Name:  FieldAffiliated,
			Label: "I am a student at a college or university",
			Kind:  KindCheckbox,
		},
		collegeField(true),
		studentIDField(true),
		resumeField(false),
	},
}

var forms = map[string]*Form{
	FormApplication: Application,
	FormContact:     Contact,
}

// Lookup returns the form registered under name.
func Lookup(name string) (*Form, bool) {
	f, ok := forms[name]
	return f, ok
}
