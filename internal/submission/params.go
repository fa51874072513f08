package submission

import (
	"github.com/dmitrymomot/intake/internal/notify"
	"github.com/dmitrymomot/intake/pkg/mailer"
)

// NoFile is the parameter value used when nothing was uploaded.
const NoFile = mailer.NoFileValue

// BuildParams assembles the notification parameter bag. fileURL is the
// uploaded file's URL, or "" when there is none.
func BuildParams(form *Form, sub *Submission, fileURL string) notify.Params {
	p := make(notify.Params, len(form.Fields))
	affiliated := sub.IsAffiliated()

	for _, f := range form.Fields {
		if f.Param == "" || (f.Conditional && !affiliated) {
			continue
		}
		switch f.Kind {
		case KindFile:
			if fileURL == "" {
				fileURL = NoFile
			}
			p[f.Param] = fileURL
		case KindSelect:
			p[f.Param] = choiceLabel(f.Choices, sub.Value(f.Name))
		default:
			p[f.Param] = sub.Value(f.Name)
		}
	}
	return p
}
