package presenter

import (
	"context"
	"strings"

	"github.com/nudgeworks/nudge/internal/log"
	"github.com/nudgeworks/nudge/nudge/gate"
)

var _ Presenter = (*Logger)(nil)

// Logger is a non-interactive presenter: it logs the alert and reports no choice.
type Logger struct{}

func (Logger) Present(_ context.Context, alert Alert) (gate.Action, error) {
	title, err := alert.Title()
	if err != nil {
		return gate.UnknownAction, err
	}
	message, err := alert.Message()
	if err != nil {
		return gate.UnknownAction, err
	}

	var labels []string
	for _, action := range alert.Options() {
		labels = append(labels, alert.Strings.WithDefaults().Label(action))
	}

	log.Infof("%s: %s (%s) [%s]", title, message, alert.Severity, strings.Join(labels, " | "))
	return gate.UnknownAction, nil
}

var _ Presenter = (*Static)(nil)

// Static answers every alert with a fixed action, provided the alert offers it.
type Static struct {
	Action gate.Action
}

func (s Static) Present(_ context.Context, alert Alert) (gate.Action, error) {
	for _, action := range alert.Options() {
		if action == s.Action {
			log.Debugf("answering %s alert with %s", alert.Rule.AlertType, action)
			return action, nil
		}
	}
	log.Warnf("action %q is not offered by a %s alert", s.Action, alert.Rule.AlertType)
	return gate.UnknownAction, nil
}
