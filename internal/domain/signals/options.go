package signals

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormatter renders a numeric value for display. The evaluator treats
// it as an injected capability so callers control locale rendering.
type NumberFormatter func(v float64) string

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithFormatter sets the number formatter used in signal messages.
func WithFormatter(f NumberFormatter) Option {
	return func(e *Evaluator) {
		if f != nil {
			e.format = f
		}
	}
}

// LocaleFormatter builds a locale-aware formatter with thousands grouping,
// e.g. 20000 renders as "20,000" under "en". Invalid tags fall back to the
// undetermined locale, which still groups digits.
func LocaleFormatter(tag string) NumberFormatter {
	printer := message.NewPrinter(language.Make(tag))
	return func(v float64) string {
		return printer.Sprint(number.Decimal(v))
	}
}
