package bus

import (
	"github.com/wagoodman/go-partybus"

	"github.com/nudgeworks/nudge/nudge/event"
)

func Exit() {
	Publish(partybus.Event{
		Type: event.CLIExit,
	})
}

// Report hands the final command output to the UI, which prints it after teardown.
func Report(source, report string) {
	Publish(partybus.Event{
		Type:   event.CheckFinished,
		Source: source,
		Value:  report,
	})
}
