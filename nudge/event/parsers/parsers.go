package parsers

import (
	"fmt"

	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/nudgeworks/nudge/nudge/event"
	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/presenter"
)

type ErrBadPayload struct {
	Type  partybus.EventType
	Field string
	Value interface{}
}

func (e *ErrBadPayload) Error() string {
	return fmt.Sprintf("event='%s' has bad event payload field='%v': '%+v'", string(e.Type), e.Field, e.Value)
}

func newPayloadErr(t partybus.EventType, field string, value interface{}) error {
	return &ErrBadPayload{
		Type:  t,
		Field: field,
		Value: value,
	}
}

func checkEventType(actual, expected partybus.EventType) error {
	if actual != expected {
		return newPayloadErr(expected, "Type", actual)
	}
	return nil
}

func ParseCheckStarted(e partybus.Event) (string, progress.StagedProgressable, error) {
	if err := checkEventType(e.Type, event.CheckStarted); err != nil {
		return "", nil, err
	}

	appIdentifier, ok := e.Source.(string)
	if !ok {
		return "", nil, newPayloadErr(e.Type, "Source", e.Source)
	}

	prog, ok := e.Value.(progress.StagedProgressable)
	if !ok {
		return "", nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return appIdentifier, prog, nil
}

func ParseAlertPresented(e partybus.Event) (*presenter.Alert, error) {
	if err := checkEventType(e.Type, event.AlertPresented); err != nil {
		return nil, err
	}

	alert, ok := e.Value.(presenter.Alert)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &alert, nil
}

func ParseCheckSuppressed(e partybus.Event) (*gate.Outcome, error) {
	if err := checkEventType(e.Type, event.CheckSuppressed); err != nil {
		return nil, err
	}

	outcome, ok := e.Value.(gate.Outcome)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &outcome, nil
}

func ParseActionResolved(e partybus.Event) (gate.Action, error) {
	if err := checkEventType(e.Type, event.ActionResolved); err != nil {
		return gate.UnknownAction, err
	}

	action, ok := e.Value.(gate.Action)
	if !ok {
		return gate.UnknownAction, newPayloadErr(e.Type, "Value", e.Value)
	}

	return action, nil
}

func ParseCheckFinished(e partybus.Event) (string, string, error) {
	if err := checkEventType(e.Type, event.CheckFinished); err != nil {
		return "", "", err
	}

	context, ok := e.Source.(string)
	if !ok {
		// this is optional
		context = ""
	}

	report, ok := e.Value.(string)
	if !ok {
		return "", "", newPayloadErr(e.Type, "Value", e.Value)
	}

	return context, report, nil
}
