package config

import (
	"fmt"
	"path"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/nudgeworks/nudge/internal"
)

type stateConfig struct {
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"` // where per-app check state is persisted
}

func (cfg stateConfig) loadDefaultValues(v *viper.Viper) {
	// e.g. ~/.local/share/nudge/state
	v.SetDefault("state.dir", path.Join(xdg.DataHome, internal.ApplicationName, "state"))
}

func (cfg *stateConfig) parseConfigValues() error {
	dir, err := homedir.Expand(cfg.Dir)
	if err != nil {
		return fmt.Errorf("unable to expand state dir %q: %w", cfg.Dir, err)
	}
	cfg.Dir = dir
	return nil
}
