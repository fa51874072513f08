package mailer

import "strings"

// markdownEscaper backslash-escapes the characters that would start inline
// markup or split a table cell. Line breaks collapse to spaces so a value
// stays on its table row.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
	`&`, `\&`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// EscapeMarkdown makes s render as literal text inside a markdown template.
// Templates call it as {{md .value}}.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var templateFuncs = map[string]any{
	"md": EscapeMarkdown,
}
