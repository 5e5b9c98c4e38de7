package policy

import (
	"fmt"
	"strings"
)

const (
	UnknownAlertType AlertType = iota
	// ForceAlert can only be answered with an update.
	ForceAlert
	// OptionAlert can be dismissed until next time or answered with an update.
	OptionAlert
	// SkipAlert additionally allows skipping the store version entirely.
	SkipAlert
	// NoAlert is silent: the decision is reported to the caller without presenting anything.
	NoAlert
)

type AlertType int

var alertTypeStr = []string{
	"unknown",
	"force",
	"option",
	"skip",
	"none",
}

var AlertTypes = []AlertType{
	ForceAlert,
	OptionAlert,
	SkipAlert,
	NoAlert,
}

func ParseAlertType(userStr string) (AlertType, error) {
	switch strings.ToLower(strings.TrimSpace(userStr)) {
	case ForceAlert.String():
		return ForceAlert, nil
	case OptionAlert.String():
		return OptionAlert, nil
	case SkipAlert.String():
		return SkipAlert, nil
	case NoAlert.String(), "silent":
		return NoAlert, nil
	default:
		return UnknownAlertType, fmt.Errorf("unknown alert type %q (options=%v)", userStr, AlertTypes)
	}
}

func (a AlertType) String() string {
	if int(a) < 0 || int(a) >= len(alertTypeStr) {
		return alertTypeStr[UnknownAlertType]
	}
	return alertTypeStr[a]
}

func (a AlertType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AlertType) UnmarshalText(text []byte) error {
	parsed, err := ParseAlertType(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Interactive reports whether the alert type expects the user to choose an action.
func (a AlertType) Interactive() bool {
	switch a {
	case ForceAlert, OptionAlert, SkipAlert:
		return true
	default:
		return false
	}
}
