package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"

	"github.com/nudgeworks/nudge/nudge/event"
)

type recordingPublisher struct {
	events []partybus.Event
}

func (r *recordingPublisher) Publish(e partybus.Event) {
	r.events = append(r.events, e)
}

func TestPublish(t *testing.T) {
	t.Cleanup(func() { SetPublisher(nil) })

	// no publisher set is a no-op
	Publish(partybus.Event{Type: event.CLIExit})

	rec := &recordingPublisher{}
	SetPublisher(rec)

	Report("check", "all good")
	Exit()

	require.Len(t, rec.events, 2)
	assert.Equal(t, event.CheckFinished, rec.events[0].Type)
	assert.Equal(t, "check", rec.events[0].Source)
	assert.Equal(t, "all good", rec.events[0].Value)
	assert.Equal(t, event.CLIExit, rec.events[1].Type)
}
