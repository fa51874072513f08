package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/intake/internal/submission"
)

// Page is the full page around a form.
func Page(form *submission.Form, state FormState) templ.Component {
	var modal templ.Component
	if state.ShowModal {
		modal = Modal()
	}
	return layout(form.Title, component(func(h *html) {
		h.raw(`<main class="section"><div class="intro">`)
		h.raw(`<h2>You Will Grow, You Will <br>Succeed. We Promise That</h2>`)
		h.raw(`<p>Reach out with your details and our team will get back to you.</p>`)
		h.render(ContactInfo())
		h.raw(`<nav class="forms">`)
		for _, link := range [][2]string{{"/", "Apply"}, {"/contact", "Contact"}} {
			h.raw(`<a`)
			h.attr("href", link[0])
			h.raw(`>`)
			h.text(link[1])
			h.raw(`</a>`)
		}
		h.raw(`</nav></div>`)
		h.render(Form(form, state))
		h.raw(`</main>`)
	}), modal)
}

// ErrorPage is a minimal page for errors outside the form flow.
func ErrorPage(code int, title, message string) templ.Component {
	return layout(title, component(func(h *html) {
		h.raw(`<main class="section error-page"><h1>`)
		h.text(title)
		h.raw(`</h1><p>`)
		h.text(message)
		h.raw(`</p><p class="code">`)
		h.text(strconv.Itoa(code))
		h.raw(`</p><a href="/">Back to the form</a></main>`)
	}), nil)
}
