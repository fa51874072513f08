package views_test

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intake/internal/submission"
	"github.com/dmitrymomot/intake/internal/views"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPage_Application(t *testing.T) {
	t.Parallel()

	out := render(t, views.Page(submission.Application, views.FormState{}))

	assert.Contains(t, out, "<title>User Information Form</title>")
	assert.Contains(t, out, `hx-post="/apply/application"`)
	assert.Contains(t, out, `accept=".pdf,image/*,.xls,.xlsx,.csv"`)
	assert.Contains(t, out, `type="date" name="dob"`)
	assert.Contains(t, out, "+1(236)833-9770")
	assert.Contains(t, out, "globalstaffing499@gmail.com")
	assert.Contains(t, out, "Mon - Fri: 10AM - 10PM")
	assert.Contains(t, out, `<div id="modal"></div>`)
	assert.NotContains(t, out, `class="status`)
}

func TestForm_InvalidKeepsValuesAndShowsErrors(t *testing.T) {
	t.Parallel()

	sub := &submission.Submission{
		Name:        `Al"<script>`,
		DOB:         "2000-01-01",
		Affiliation: submission.Affiliated{Institution: "X", MemberID: "ab"},
	}
	state := views.StateFromOutcome(sub, submission.Outcome{
		State:  submission.StateInvalid,
		Errors: submission.Validate(submission.Application, sub),
	})

	out := render(t, views.Form(submission.Application, state))

	assert.Contains(t, out, `value="Al&#34;&lt;script&gt;"`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Student ID must be at least 5 characters long")
	assert.Contains(t, out, "File is required")
	assert.Contains(t, out, `value="X"`)
}

func TestForm_StatusColours(t *testing.T) {
	t.Parallel()

	failed := render(t, views.Form(submission.Application, views.StateFromOutcome(nil, submission.Outcome{
		State:   submission.StateUploadFailed,
		Message: "Failed to upload file",
	})))
	assert.Contains(t, failed, `class="status status-error"`)
	assert.Contains(t, failed, "Failed to upload file")

	tooLarge := render(t, views.Form(submission.Application, views.StateFromOutcome(nil, submission.Outcome{
		State:   submission.StateUploadFailed,
		Message: "File size exceeds 10 MB limit",
	})))
	assert.Contains(t, tooLarge, `class="status status-ok"`)
}

func TestStateFromOutcome_SuccessResetsValues(t *testing.T) {
	t.Parallel()

	sub := &submission.Submission{Name: "Alice Smith"}
	st := views.StateFromOutcome(sub, submission.Outcome{
		State:   submission.StateSucceeded,
		Message: submission.MsgSucceeded,
	})
	assert.Nil(t, st.Values)
	assert.False(t, st.IsError)

	out := render(t, views.Form(submission.Application, st))
	assert.NotContains(t, out, "Alice Smith")
	assert.Contains(t, out, "Form submitted successfully! Check your email.")
}

func TestForm_ContactAffiliation(t *testing.T) {
	t.Parallel()

	out := render(t, views.Form(submission.Contact, views.FormState{
		Values: &submission.Submission{Affiliation: submission.Affiliated{Institution: "UBC"}},
	}))

	assert.Contains(t, out, `<fieldset class="affiliation">`)
	assert.Contains(t, out, `name="affiliated" id="f-affiliated" checked`)
	assert.Contains(t, out, `class="field conditional"`)
	assert.Contains(t, out, `<option value="general">General question</option>`)
}

func TestModal(t *testing.T) {
	t.Parallel()

	out := render(t, views.Modal())
	assert.Contains(t, out, `hx-swap-oob="true"`)
	assert.Contains(t, out, "Thank You!")
	assert.Contains(t, out, ">Close</button>")
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	out := render(t, views.ErrorPage(404, "Not Found", "Unknown form"))
	assert.Contains(t, out, "<h1>Not Found</h1>")
	assert.Contains(t, out, "Unknown form")
	assert.Contains(t, out, "404")
}

func TestAssets(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(views.Assets, "assets/app.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), ".status-error")
}

func TestPage_SuccessOpensModal(t *testing.T) {
	t.Parallel()

	out := render(t, views.Page(submission.Application, views.StateFromOutcome(nil, submission.Outcome{
		State:   submission.StateSucceeded,
		Message: submission.MsgSucceeded,
	})))
	assert.Contains(t, out, "Thank You!")
	assert.NotContains(t, out, `<div id="modal"></div>`)
}
