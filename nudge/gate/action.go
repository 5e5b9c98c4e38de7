package gate

import (
	"fmt"
	"strings"
)

const (
	UnknownAction Action = iota
	UpdateAction
	NextTimeAction
	SkipAction
)

// Action is the single choice a user reports back after an alert was presented.
type Action int

var actionStr = []string{
	"unknown",
	"update",
	"next-time",
	"skip",
}

var Actions = []Action{
	UpdateAction,
	NextTimeAction,
	SkipAction,
}

func ParseAction(userStr string) (Action, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(userStr)), "_", "-") {
	case "update":
		return UpdateAction, nil
	case "next-time", "nexttime", "next", "later":
		return NextTimeAction, nil
	case "skip", "skip-version":
		return SkipAction, nil
	case "", "unknown", "none":
		return UnknownAction, nil
	}
	return UnknownAction, fmt.Errorf("unknown action %q (options=%v)", userStr, Actions)
}

func (a Action) String() string {
	if int(a) >= len(actionStr) || a < 0 {
		return actionStr[0]
	}
	return actionStr[a]
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
