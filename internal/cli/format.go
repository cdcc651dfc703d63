package cli

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/halmertz/vertrag/internal/config"
)

// FormatAmount renders a monetary amount in the configured currency and
// locale, e.g. "9,99 €" for de/EUR.
func FormatAmount(amount float64, settings config.Settings) string {
	unit, err := currency.ParseISO(settings.Currency)
	if err != nil {
		unit = currency.EUR
	}
	p := message.NewPrinter(localeTag(settings))
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(amount)))
}

// FormatDate renders a date in the locale's conventional order, or "-" when
// the date is absent.
func FormatDate(t *time.Time, settings config.Settings) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	if settings.Locale == "de" {
		return t.Format("02.01.2006")
	}
	return t.Format("2006-01-02")
}

func localeTag(settings config.Settings) language.Tag {
	switch settings.Locale {
	case "de":
		return language.German
	default:
		return language.English
	}
}
