package gate

import (
	"time"

	"github.com/nudgeworks/nudge/nudge/state"
)

// DecisionContext holds the inputs to a single check. It is built fresh for every check and never shared.
type DecisionContext struct {
	// InstalledVersion is the version of the app currently running.
	InstalledVersion string
	// StoreVersion is the latest version published on the store.
	StoreVersion string
	// AppID is the store's numeric identifier for the app.
	AppID string
	// MinimumOSVersion is the lowest OS version the store version supports.
	MinimumOSVersion string
	// CurrentOSVersion is the OS version of the running system. When empty the OS compatibility check is skipped.
	CurrentOSVersion string
	// ReleaseDate is when the store version was published.
	ReleaseDate *time.Time
	// Now is the instant the check runs at; zero means the gate's clock is used.
	Now time.Time
	// ReleaseAgeThreshold is the number of whole days a release must have been public before alerting.
	ReleaseAgeThreshold int
	// State is the persisted state snapshot; when nil the gate reads it from its store.
	State *state.State
}
