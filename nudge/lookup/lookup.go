package lookup

import (
	"context"
	"time"
)

// Fetcher retrieves the latest published metadata for an app from a store.
type Fetcher interface {
	Fetch(ctx context.Context, appIdentifier, region string) (*Result, error)
}

// Result is the store metadata for the latest published version of an app. Fields the store omitted are left empty.
type Result struct {
	AppID            string     `json:"appID,omitempty"`
	Version          string     `json:"version,omitempty"`
	MinimumOSVersion string     `json:"minimumOSVersion,omitempty"`
	ReleaseDate      *time.Time `json:"releaseDate,omitempty"`
	TrackViewURL     string     `json:"trackViewURL,omitempty"`
	ReleaseNotes     string     `json:"releaseNotes,omitempty"`
}
