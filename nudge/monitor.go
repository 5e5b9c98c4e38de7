package nudge

import (
	"sync"

	"github.com/wagoodman/go-progress"
)

const (
	stageFetching   = "fetching store metadata"
	stageDeciding   = "deciding"
	stagePresenting = "presenting alert"
	stageAwaiting   = "awaiting response"
	stageDone       = "done"
)

var checkStages = []string{stageFetching, stageDeciding, stagePresenting}

var _ progress.StagedProgressable = (*checkMonitor)(nil)

// checkMonitor reports the progress of a single check to event subscribers.
type checkMonitor struct {
	lock    sync.RWMutex
	stage   string
	current int64
	err     error
}

func newCheckMonitor() *checkMonitor {
	return &checkMonitor{stage: stageFetching}
}

func (m *checkMonitor) Stage() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.stage
}

func (m *checkMonitor) Current() int64 {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.current
}

func (m *checkMonitor) Size() int64 {
	return int64(len(checkStages))
}

func (m *checkMonitor) Error() error {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.err
}

func (m *checkMonitor) advance(stage string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.stage = stage
	m.current++
}

// finish marks the check complete; a nil error is reported as progress.ErrCompleted.
func (m *checkMonitor) finish(stage string, err error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.stage = stage
	m.current = int64(len(checkStages))
	if err == nil {
		err = progress.ErrCompleted
	}
	m.err = err
}
