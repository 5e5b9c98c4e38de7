package event

import "github.com/wagoodman/go-partybus"

const (
	// CheckStarted carries a progress.StagedProgressable describing the running check; the source is the app identifier.
	CheckStarted partybus.EventType = "nudge-check-started"

	// AlertPresented carries the presenter.Alert about to be shown.
	AlertPresented partybus.EventType = "nudge-alert-presented"

	// CheckSuppressed carries the gate.Outcome of a check that produced no alert.
	CheckSuppressed partybus.EventType = "nudge-check-suppressed"

	// ActionResolved carries the gate.Action a user chose for an alert.
	ActionResolved partybus.EventType = "nudge-action-resolved"

	// CheckFinished carries the final report string for the command-line UI.
	CheckFinished partybus.EventType = "nudge-check-finished"

	// CLIExit signals the command-line UI to tear down.
	CLIExit partybus.EventType = "nudge-cli-exit"
)
