package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/version"
)

// rule is the user facing form of a policy.Rule; empty fields fall back to the preset (or the default rule).
type rule struct {
	AlertType string `yaml:"alert-type" json:"alert-type" mapstructure:"alert-type"`
	Frequency string `yaml:"frequency" json:"frequency" mapstructure:"frequency"`
}

// rules decides how each update severity is presented.
type rules struct {
	Preset   string        `yaml:"preset" json:"preset" mapstructure:"preset"` // a named rule applied to every severity
	Major    rule          `yaml:"major" json:"major" mapstructure:"major"`
	Minor    rule          `yaml:"minor" json:"minor" mapstructure:"minor"`
	Patch    rule          `yaml:"patch" json:"patch" mapstructure:"patch"`
	Revision rule          `yaml:"revision" json:"revision" mapstructure:"revision"`
	Policy   policy.Policy `yaml:"-" json:"-"`
}

func (cfg rules) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("rules.preset", "")
	for _, severity := range []string{"major", "minor", "patch", "revision"} {
		v.SetDefault(fmt.Sprintf("rules.%s.alert-type", severity), "")
		v.SetDefault(fmt.Sprintf("rules.%s.frequency", severity), "")
	}
}

func (cfg *rules) parseConfigValues() error {
	base := policy.DefaultRule
	if cfg.Preset != "" {
		preset, err := policy.Preset(cfg.Preset)
		if err != nil {
			return err
		}
		base = preset
	}

	var errs error
	parsed := make(map[version.Severity]policy.Rule)
	for severity, r := range map[version.Severity]rule{
		version.MajorSeverity:    cfg.Major,
		version.MinorSeverity:    cfg.Minor,
		version.PatchSeverity:    cfg.Patch,
		version.RevisionSeverity: cfg.Revision,
	} {
		out, err := r.toRule(base)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("bad %s rule: %w", severity, err))
			continue
		}
		parsed[severity] = out
	}
	if errs != nil {
		return errs
	}

	cfg.Policy = policy.NewPolicy(parsed)
	return nil
}

func (r rule) toRule(base policy.Rule) (policy.Rule, error) {
	out := base
	if r.AlertType != "" {
		alertType, err := policy.ParseAlertType(r.AlertType)
		if err != nil {
			return out, err
		}
		out.AlertType = alertType
	}
	if r.Frequency != "" {
		frequency, err := policy.ParseFrequency(r.Frequency)
		if err != nil {
			return out, err
		}
		out.Frequency = frequency
	}
	return out, nil
}
