package ui

import (
	"fmt"
	"io"

	"github.com/wagoodman/go-partybus"

	nudgeEventParsers "github.com/nudgeworks/nudge/nudge/event/parsers"
)

func handleCheckFinished(event partybus.Event, reportOutput io.Writer) error {
	// show the report to stdout
	_, report, err := nudgeEventParsers.ParseCheckFinished(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	if _, err := io.WriteString(reportOutput, report); err != nil {
		return fmt.Errorf("unable to show check report: %w", err)
	}
	return nil
}
