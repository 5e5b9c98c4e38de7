package state

import (
	"encoding/json"
	"fmt"
	"time"
)

// State is the small amount of information carried between version checks.
type State struct {
	// LastAlertDate is when an alert was last produced (nil if never).
	LastAlertDate *time.Time
	// SkippedVersion is the store version the user asked to skip ("" if none).
	SkippedVersion string
	// PendingNextLaunchCheck forces the next check to alert regardless of frequency.
	PendingNextLaunchCheck bool
}

// Store durably persists State for a single app. Each setter persists immediately and touches only its own field.
type Store interface {
	Get() (State, error)
	SetLastAlertDate(time.Time) error
	SetSkippedVersion(string) error
	SetPendingNextLaunchCheck(bool) error
	Reset() error
}

// stateJSON is a helper struct for parsing and assembling State objects to and from JSON.
type stateJSON struct {
	LastAlertDate          string `json:"lastAlertDate,omitempty"` // RFC 3339, nanosecond precision
	SkippedVersion         string `json:"skippedVersion,omitempty"`
	PendingNextLaunchCheck bool   `json:"pendingNextLaunchCheck"`
}

func (s State) MarshalJSON() ([]byte, error) {
	sj := stateJSON{
		SkippedVersion:         s.SkippedVersion,
		PendingNextLaunchCheck: s.PendingNextLaunchCheck,
	}
	if s.LastAlertDate != nil {
		sj.LastAlertDate = s.LastAlertDate.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(sj)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var sj stateJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}

	out := State{
		SkippedVersion:         sj.SkippedVersion,
		PendingNextLaunchCheck: sj.PendingNextLaunchCheck,
	}
	if sj.LastAlertDate != "" {
		last, err := time.Parse(time.RFC3339Nano, sj.LastAlertDate)
		if err != nil {
			return fmt.Errorf("cannot convert last alert date (%s): %w", sj.LastAlertDate, err)
		}
		last = last.UTC()
		out.LastAlertDate = &last
	}

	*s = out
	return nil
}

func (s State) String() string {
	last := "never"
	if s.LastAlertDate != nil {
		last = s.LastAlertDate.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("State(lastAlert=%s skipped=%q pendingNextLaunch=%t)", last, s.SkippedVersion, s.PendingNextLaunchCheck)
}
