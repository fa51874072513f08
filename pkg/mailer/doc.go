// Package mailer renders markdown email templates and hands the result to a
// provider-specific Sender.
//
// A template is a markdown file with optional YAML front matter. The body is
// executed as a text/template with the message data, converted to HTML with
// goldmark and wrapped in an html/template layout:
//
//	---
//	Subject: New application from {{.from_name}}
//	---
//	**Name:** {{.from_name}}
//
//	[!file|View resume]({{.resume}})
//
// The [!file|Label](url) syntax renders a button, or "No file attached" when
// url is empty or N/A.
package mailer
