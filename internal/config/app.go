package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/nudgeworks/nudge/nudge/version"
)

// app describes the application whose updates are being checked.
type app struct {
	BundleID         string `yaml:"bundle-id" json:"bundle-id" mapstructure:"bundle-id"`                         // the store bundle identifier to look up
	Name             string `yaml:"name" json:"name" mapstructure:"name"`                                        // the display name used in alert messages
	InstalledVersion string `yaml:"installed-version" json:"installed-version" mapstructure:"installed-version"` // the version currently installed
	OSVersion        string `yaml:"os-version" json:"os-version" mapstructure:"os-version"`                      // the running OS version (empty skips the OS compatibility check)
	AppID            string `yaml:"app-id" json:"app-id" mapstructure:"app-id"`                                  // the numeric store id (looked up when empty)
}

func (cfg app) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("app.bundle-id", "")
	v.SetDefault("app.name", "")
	v.SetDefault("app.installed-version", "")
	v.SetDefault("app.os-version", "")
	v.SetDefault("app.app-id", "")
}

func (cfg *app) parseConfigValues() error {
	if cfg.InstalledVersion != "" {
		if _, err := version.Parse(cfg.InstalledVersion); err != nil {
			return fmt.Errorf("bad installed version: %w", err)
		}
	}
	if cfg.OSVersion != "" {
		if _, err := version.Parse(cfg.OSVersion); err != nil {
			return fmt.Errorf("bad OS version: %w", err)
		}
	}
	return nil
}
