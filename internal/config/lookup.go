package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/nudgeworks/nudge/nudge/lookup"
)

type lookupConfig struct {
	URL     string        `yaml:"url" json:"url" mapstructure:"url"`             // the store lookup endpoint
	Country string        `yaml:"country" json:"country" mapstructure:"country"` // the storefront region to query
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"` // the timeout for a single lookup
}

func (cfg lookupConfig) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("lookup.url", lookup.DefaultURL)
	v.SetDefault("lookup.country", "us")
	v.SetDefault("lookup.timeout", lookup.DefaultTimeout)
}

func (cfg *lookupConfig) parseConfigValues() error {
	if cfg.Timeout < 0 {
		return fmt.Errorf("lookup timeout must not be negative: %s", cfg.Timeout)
	}
	return nil
}

func (cfg lookupConfig) ToClientConfig() lookup.Config {
	return lookup.Config{
		URL:     cfg.URL,
		Timeout: cfg.Timeout,
	}
}
