// Package views renders the intake pages as templ components.
package views

import (
	"embed"

	"github.com/a-h/templ"
)

//go:embed assets
var Assets embed.FS

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Contact details shown next to the form.
const (
	ContactPhone = "+1(236)833-9770"
	ContactEmail = "globalstaffing499@gmail.com"
	OpeningHours = "Mon - Fri: 10AM - 10PM"
)

// layout wraps body in the HTML document. modal, when set, starts open.
func layout(title string, body, modal templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="/assets/app.css">`)
		h.raw(`<script src="` + htmxScript + `" defer></script></head><body>`)
		h.render(body)
		if modal != nil {
			h.render(modal)
		} else {
			h.raw(`<div id="modal"></div>`)
		}
		h.raw(`</body></html>`)
	})
}

// ContactInfo is the phone, email and opening hours block.
func ContactInfo() templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="contact-info">`)
		for _, item := range [][2]string{
			{"Call for inquiry", ContactPhone},
			{"Send us email", ContactEmail},
			{"Opening hours", OpeningHours},
		} {
			h.raw(`<div class="contact-item"><h4>`)
			h.text(item[0])
			h.raw(`</h4><p>`)
			h.text(item[1])
			h.raw(`</p></div>`)
		}
		h.raw(`</div>`)
	})
}
