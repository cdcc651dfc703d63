package config

import (
	"errors"
	"testing"

	"github.com/spf13/viper"

	"github.com/halmertz/vertrag/internal/common"
)

func TestLoadSettingsDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Locale != "de" {
		t.Errorf("Locale = %q, want de", s.Locale)
	}
	if s.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", s.Currency)
	}
	if s.NotificationsEnabled {
		t.Error("NotificationsEnabled = true, want false by default")
	}
}

func TestLoadSettingsFromConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("display.locale", "en")
	viper.Set("display.currency", "CHF")
	viper.Set("notifications.enabled", true)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Locale != "en" || s.Currency != "CHF" || !s.NotificationsEnabled {
		t.Errorf("LoadSettings() = %+v", s)
	}
}

func TestLoadSettingsRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown locale", key: "display.locale", value: "fr"},
		{name: "unknown currency", key: "display.currency", value: "JPY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			viper.Set(tt.key, tt.value)

			if _, err := LoadSettings(); !errors.Is(err, common.ErrInvalidConfig) {
				t.Errorf("LoadSettings() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
