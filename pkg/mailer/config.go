package mailer

// Config holds mailer defaults.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"New submission"`
	Layout          string `env:"MAILER_LAYOUT" envDefault:"base.html"`
}
