package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/intake/internal/submission"
)

// PanelID is the element the form partial replaces.
const PanelID = "form-panel"

// FormState is what the form shows: previous values, inline errors and
// the status line.
type FormState struct {
	Values    *submission.Submission
	Errors    submission.ValidationErrors
	Message   string
	IsError   bool
	ShowModal bool
}

// StateFromOutcome keeps the submitted values unless the submission
// succeeded, in which case the form starts over empty.
func StateFromOutcome(sub *submission.Submission, out submission.Outcome) FormState {
	st := FormState{
		Errors:    out.Errors,
		Message:   out.Message,
		IsError:   out.IsError(),
		ShowModal: out.Succeeded(),
	}
	if !out.Succeeded() {
		st.Values = sub
	}
	return st
}

// Form is the form panel. HTMX requests swap it in place.
func Form(form *submission.Form, state FormState) templ.Component {
	action := "/apply/" + form.Name
	return component(func(h *html) {
		h.raw(`<div class="form-panel"`)
		h.attr("id", PanelID)
		h.raw(`><h3>`)
		h.text(form.Title)
		h.raw(`</h3><p class="lead">`)
		h.text(form.Description)
		h.raw(`</p><form method="post" enctype="multipart/form-data" novalidate`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.attr("hx-encoding", "multipart/form-data")
		h.attr("hx-target", "#"+PanelID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-indicator", "#"+PanelID+" button[type=submit]")
		h.attr("hx-disabled-elt", "find button")
		h.raw(`>`)

		affiliationOpen := false
		for _, f := range form.Fields {
			if f.Kind == submission.KindCheckbox {
				h.raw(`<fieldset class="affiliation">`)
				affiliationOpen = true
			}
			field(h, f, state)
		}
		if affiliationOpen {
			h.raw(`</fieldset>`)
		}

		h.raw(`<button type="submit"><span class="spinner" aria-hidden="true"></span>`)
		h.raw(`<span class="label">Submit</span><span class="busy">Submitting...</span></button></form>`)

		if state.Message != "" {
			h.raw(`<p`)
			if state.IsError {
				h.attr("class", "status status-error")
			} else {
				h.attr("class", "status status-ok")
			}
			h.attr("role", "status")
			h.raw(`>`)
			h.text(state.Message)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
	})
}

// field renders one labelled input with its inline error. Conditional
// fields sit inside the affiliation fieldset and are hidden by CSS while
// the checkbox is unticked.
func field(h *html, f submission.Field, state FormState) {
	id := "f-" + f.Name
	msg := state.Errors.Message(f.Name)
	value := state.Values.Value(f.Name)

	class := "field"
	if f.Conditional {
		class += " conditional"
	}
	if msg != "" {
		class += " invalid"
	}

	h.raw(`<div`)
	h.attr("class", class)
	h.raw(`>`)

	if f.Kind == submission.KindCheckbox {
		h.raw(`<label class="check"><input type="checkbox" value="on"`)
		h.attr("name", f.Name)
		h.attr("id", id)
		h.flag("checked", value != "")
		h.raw(`> `)
		h.text(f.Label)
		h.raw(`</label></div>`)
		return
	}

	h.raw(`<label`)
	h.attr("for", id)
	h.raw(`>`)
	h.text(f.Label)
	h.raw(`</label>`)

	switch f.Kind {
	case submission.KindSelect:
		h.raw(`<select`)
		h.attr("name", f.Name)
		h.attr("id", id)
		h.raw(`><option value="">Select one</option>`)
		for _, c := range f.Choices {
			h.raw(`<option`)
			h.attr("value", c.Value)
			h.flag("selected", c.Value == value)
			h.raw(`>`)
			h.text(c.Label)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
	case submission.KindFile:
		h.raw(`<input type="file"`)
		h.attr("name", f.Name)
		h.attr("id", id)
		h.attr("accept", f.Accept)
		h.raw(`>`)
	default:
		h.raw(`<input`)
		h.attr("type", inputType(f.Kind))
		h.attr("name", f.Name)
		h.attr("id", id)
		h.attr("value", value)
		if f.Placeholder != "" {
			h.attr("placeholder", f.Placeholder)
		}
		if f.MinLen > 0 {
			h.attr("minlength", strconv.Itoa(f.MinLen))
		}
		h.raw(`>`)
	}

	if msg != "" {
		h.raw(`<p class="error">`)
		h.text(msg)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
}

func inputType(k submission.FieldKind) string {
	switch k {
	case submission.KindDate:
		return "date"
	case submission.KindEmail:
		return "email"
	case submission.KindTel:
		return "tel"
	default:
		return "text"
	}
}

// Modal is the success dialog, swapped out of band into #modal.
func Modal() templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="modal" hx-swap-oob="true"><div class="modal-backdrop"><div class="modal" role="dialog" aria-modal="true">`)
		h.raw(`<h2>Thank You!</h2>`)
		h.raw(`<p>Your form has been submitted successfully. We appreciate your response.</p>`)
		h.raw(`<button type="button" onclick="document.getElementById('modal').innerHTML=''">Close</button>`)
		h.raw(`</div></div></div>`)
	})
}
