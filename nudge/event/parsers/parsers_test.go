package parsers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/nudgeworks/nudge/nudge/event"
	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/presenter"
)

func assertBadPayload(t *testing.T, err error, field string) {
	t.Helper()
	var bad *ErrBadPayload
	require.True(t, errors.As(err, &bad), "expected a bad payload error, got %v", err)
	assert.Equal(t, field, bad.Field)
}

func TestParseCheckStarted(t *testing.T) {
	prog := progress.StagedProgressable(&struct {
		progress.Stager
		progress.Progressable
	}{
		Stager:       &progress.Stage{Current: "fetching"},
		Progressable: &progress.Manual{Total: 3},
	})
	id, actual, err := ParseCheckStarted(partybus.Event{Type: event.CheckStarted, Source: "com.example.app", Value: prog})
	require.NoError(t, err)
	assert.Equal(t, "com.example.app", id)
	assert.Equal(t, prog, actual)

	_, _, err = ParseCheckStarted(partybus.Event{Type: event.CheckStarted, Value: prog})
	assertBadPayload(t, err, "Source")

	_, _, err = ParseCheckStarted(partybus.Event{Type: event.CheckStarted, Source: "x", Value: 3})
	assertBadPayload(t, err, "Value")

	_, _, err = ParseCheckStarted(partybus.Event{Type: event.CheckFinished})
	assertBadPayload(t, err, "Type")
}

func TestParseAlertPresented(t *testing.T) {
	alert := presenter.Alert{StoreVersion: "2.1.0"}
	actual, err := ParseAlertPresented(partybus.Event{Type: event.AlertPresented, Value: alert})
	require.NoError(t, err)
	assert.Equal(t, alert, *actual)

	_, err = ParseAlertPresented(partybus.Event{Type: event.AlertPresented, Value: &alert})
	assertBadPayload(t, err, "Value")
}

func TestParseCheckSuppressed(t *testing.T) {
	outcome := gate.Suppressed(gate.ReasonNoUpdate)
	actual, err := ParseCheckSuppressed(partybus.Event{Type: event.CheckSuppressed, Value: outcome})
	require.NoError(t, err)
	assert.Equal(t, outcome, *actual)

	_, err = ParseCheckSuppressed(partybus.Event{Type: event.AlertPresented, Value: outcome})
	assertBadPayload(t, err, "Type")
}

func TestParseActionResolved(t *testing.T) {
	actual, err := ParseActionResolved(partybus.Event{Type: event.ActionResolved, Value: gate.SkipAction})
	require.NoError(t, err)
	assert.Equal(t, gate.SkipAction, actual)

	_, err = ParseActionResolved(partybus.Event{Type: event.ActionResolved, Value: "skip"})
	assertBadPayload(t, err, "Value")
}

func TestParseCheckFinished(t *testing.T) {
	source, report, err := ParseCheckFinished(partybus.Event{Type: event.CheckFinished, Value: "done"})
	require.NoError(t, err)
	assert.Empty(t, source)
	assert.Equal(t, "done", report)

	source, _, err = ParseCheckFinished(partybus.Event{Type: event.CheckFinished, Source: "check", Value: "done"})
	require.NoError(t, err)
	assert.Equal(t, "check", source)

	_, _, err = ParseCheckFinished(partybus.Event{Type: event.CheckFinished, Value: 1})
	assertBadPayload(t, err, "Value")
}
