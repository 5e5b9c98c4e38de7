package nudge

import (
	"github.com/wagoodman/go-partybus"

	"github.com/nudgeworks/nudge/internal/bus"
	"github.com/nudgeworks/nudge/internal/log"
	"github.com/nudgeworks/nudge/nudge/logger"
)

func SetLogger(l logger.Logger) {
	log.Log = l
}

// SetBus sets the bus library events are published on; nil stops publishing.
func SetBus(b *partybus.Bus) {
	if b == nil {
		bus.SetPublisher(nil)
		return
	}
	bus.SetPublisher(b)
}
