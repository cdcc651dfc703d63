package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/halmertz/vertrag/internal/common"
)

// Settings holds the device-wide display and notification preferences.
// They live in the config file, not in the contract store, and are passed
// explicitly into formatting calls; the derivation logic never reads them.
type Settings struct {
	Locale               string
	Currency             string
	NotificationsEnabled bool
}

// SupportedCurrencies are the ISO 4217 codes the display layer knows how to
// format.
var SupportedCurrencies = []string{
	"EUR", "USD", "GBP", "CHF", "PLN", "CZK", "SEK", "NOK", "DKK",
}

// SupportedLocales are the display languages.
var SupportedLocales = []string{"de", "en"}

// LoadSettings reads the device settings from viper, applying defaults for
// anything unset.
func LoadSettings() (Settings, error) {
	s := Settings{
		Locale:               viper.GetString("display.locale"),
		Currency:             viper.GetString("display.currency"),
		NotificationsEnabled: viper.GetBool("notifications.enabled"),
	}
	if s.Locale == "" {
		s.Locale = "de"
	}
	if s.Currency == "" {
		s.Currency = "EUR"
	}

	if !contains(SupportedLocales, s.Locale) {
		return Settings{}, fmt.Errorf("%w: unsupported locale %q", common.ErrInvalidConfig, s.Locale)
	}
	if !contains(SupportedCurrencies, s.Currency) {
		return Settings{}, fmt.Errorf("%w: unsupported currency %q", common.ErrInvalidConfig, s.Currency)
	}

	return s, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
