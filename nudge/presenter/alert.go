package presenter

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/version"
)

// Strings are the user facing texts of an alert. Title and Message are Go templates rendered against the Alert
// (with the sprig function library available); the button labels are used verbatim.
type Strings struct {
	Title          string `yaml:"title" json:"title" mapstructure:"title"`
	Message        string `yaml:"message" json:"message" mapstructure:"message"`
	UpdateButton   string `yaml:"update-button" json:"update-button" mapstructure:"update-button"`
	NextTimeButton string `yaml:"next-time-button" json:"next-time-button" mapstructure:"next-time-button"`
	SkipButton     string `yaml:"skip-button" json:"skip-button" mapstructure:"skip-button"`
}

var DefaultStrings = Strings{
	Title:          "Update Available",
	Message:        `A new version of {{ .AppName | default "this app" }} is available. Please update to version {{ .StoreVersion }} now.`,
	UpdateButton:   "Update",
	NextTimeButton: "Next time",
	SkipButton:     "Skip this version",
}

// WithDefaults fills every empty string from DefaultStrings.
func (s Strings) WithDefaults() Strings {
	if s.Title == "" {
		s.Title = DefaultStrings.Title
	}
	if s.Message == "" {
		s.Message = DefaultStrings.Message
	}
	if s.UpdateButton == "" {
		s.UpdateButton = DefaultStrings.UpdateButton
	}
	if s.NextTimeButton == "" {
		s.NextTimeButton = DefaultStrings.NextTimeButton
	}
	if s.SkipButton == "" {
		s.SkipButton = DefaultStrings.SkipButton
	}
	return s
}

// Label is the button text for an action.
func (s Strings) Label(action gate.Action) string {
	switch action {
	case gate.UpdateAction:
		return s.UpdateButton
	case gate.NextTimeAction:
		return s.NextTimeButton
	case gate.SkipAction:
		return s.SkipButton
	}
	return action.String()
}

// Alert is everything a presenter needs to render one update prompt.
type Alert struct {
	AppName          string           `json:"appName,omitempty"`
	InstalledVersion string           `json:"installedVersion"`
	StoreVersion     string           `json:"storeVersion"`
	Severity         version.Severity `json:"severity"`
	Rule             policy.Rule      `json:"rule"`
	ReleaseNotes     string           `json:"releaseNotes,omitempty"`
	Strings          Strings          `json:"-"`
}

// Options lists the actions an alert type offers, in presentation order. Silent alerts offer none.
func Options(alertType policy.AlertType) []gate.Action {
	switch alertType {
	case policy.ForceAlert:
		return []gate.Action{gate.UpdateAction}
	case policy.OptionAlert:
		return []gate.Action{gate.NextTimeAction, gate.UpdateAction}
	case policy.SkipAlert:
		return []gate.Action{gate.NextTimeAction, gate.UpdateAction, gate.SkipAction}
	}
	return nil
}

func (a Alert) Options() []gate.Action {
	return Options(a.Rule.AlertType)
}

func (a Alert) Title() (string, error) {
	return a.render("title", a.Strings.WithDefaults().Title)
}

func (a Alert) Message() (string, error) {
	return a.render("message", a.Strings.WithDefaults().Message)
}

func (a Alert) render(name, text string) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("unable to parse alert %s template: %w", name, err)
	}
	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, a); err != nil {
		return "", fmt.Errorf("unable to render alert %s: %w", name, err)
	}
	return buf.String(), nil
}

// ValidateStrings checks that the templated strings parse.
func ValidateStrings(s Strings) error {
	a := Alert{Strings: s}
	if _, err := a.Title(); err != nil {
		return err
	}
	_, err := a.Message()
	return err
}
