package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/nudgeworks/nudge/nudge/presenter"
)

// alert holds the alert texts; title and message are templates.
type alert struct {
	presenter.Strings `yaml:",inline" mapstructure:",squash"`
}

func (cfg alert) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("alert.title", presenter.DefaultStrings.Title)
	v.SetDefault("alert.message", presenter.DefaultStrings.Message)
	v.SetDefault("alert.update-button", presenter.DefaultStrings.UpdateButton)
	v.SetDefault("alert.next-time-button", presenter.DefaultStrings.NextTimeButton)
	v.SetDefault("alert.skip-button", presenter.DefaultStrings.SkipButton)
}

func (cfg *alert) parseConfigValues() error {
	cfg.Strings = cfg.Strings.WithDefaults()
	if err := presenter.ValidateStrings(cfg.Strings); err != nil {
		return err
	}

	seen := make(map[string]string)
	for name, label := range map[string]string{
		"update-button":    cfg.UpdateButton,
		"next-time-button": cfg.NextTimeButton,
		"skip-button":      cfg.SkipButton,
	} {
		if other, ok := seen[label]; ok {
			return fmt.Errorf("alert %s and %s must differ (both are %q)", name, other, label)
		}
		seen[label] = name
	}
	return nil
}
