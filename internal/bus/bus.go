// Package bus holds the process wide event publisher. Library code publishes through it and stays silent until a
// publisher is set.
package bus

import (
	"sync"

	"github.com/wagoodman/go-partybus"
)

var (
	lock      sync.RWMutex
	publisher partybus.Publisher
)

func SetPublisher(p partybus.Publisher) {
	lock.Lock()
	defer lock.Unlock()
	publisher = p
}

func Publish(e partybus.Event) {
	lock.RLock()
	p := publisher
	lock.RUnlock()

	if p != nil {
		p.Publish(e)
	}
}
