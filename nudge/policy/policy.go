package policy

import (
	"fmt"

	"github.com/nudgeworks/nudge/nudge/version"
)

// Rule pairs how an alert is presented with how often it may be presented.
type Rule struct {
	AlertType AlertType `json:"alertType" yaml:"alert-type"`
	Frequency Frequency `json:"frequency" yaml:"frequency"`
}

// DefaultRule applies to any severity without a configured rule.
var DefaultRule = Rule{AlertType: OptionAlert, Frequency: Immediately}

func (r Rule) String() string {
	return fmt.Sprintf("Rule(alert=%s frequency=%s)", r.AlertType, r.Frequency)
}

// Policy maps upgrade severities to presentation rules.
type Policy struct {
	rules map[version.Severity]Rule
}

func NewPolicy(rules map[version.Severity]Rule) Policy {
	p := Policy{rules: make(map[version.Severity]Rule, len(rules))}
	for severity, rule := range rules {
		if severity == version.NoneSeverity {
			continue
		}
		p.rules[severity] = rule
	}
	return p
}

// NewPolicyFromPreset applies a single preset rule to every severity.
func NewPolicyFromPreset(name string) (Policy, error) {
	rule, err := Preset(name)
	if err != nil {
		return Policy{}, err
	}
	rules := make(map[version.Severity]Rule, len(version.Severities))
	for _, severity := range version.Severities {
		rules[severity] = rule
	}
	return NewPolicy(rules), nil
}

// RuleFor returns the configured rule for the severity, or DefaultRule when none was configured.
func (p Policy) RuleFor(severity version.Severity) Rule {
	if rule, ok := p.rules[severity]; ok {
		return rule
	}
	return DefaultRule
}

// Rules returns the effective rule for every severity.
func (p Policy) Rules() map[version.Severity]Rule {
	out := make(map[version.Severity]Rule, len(version.Severities))
	for _, severity := range version.Severities {
		out[severity] = p.RuleFor(severity)
	}
	return out
}
