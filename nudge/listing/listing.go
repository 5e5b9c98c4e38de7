package listing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/skratchdot/open-golang/open"

	"github.com/nudgeworks/nudge/internal/log"
	"github.com/nudgeworks/nudge/nudge/nudgeerr"
)

const storeBaseURL = "https://apps.apple.com/app/"

// Opener launches a URL with the system handler.
type Opener func(url string) error

// DefaultOpener hands the URL to the OS (open, xdg-open, or start) without waiting for the handler to exit.
var DefaultOpener Opener = open.Start

// StoreURL builds the store listing URL for a numeric app id.
func StoreURL(appID string) (string, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return "", fmt.Errorf("%w: no app id", nudgeerr.ErrMalformedStoreURL)
	}
	for _, r := range appID {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: app id %q is not numeric", nudgeerr.ErrMalformedStoreURL, appID)
		}
	}

	u, err := url.Parse(storeBaseURL + "id" + appID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", nudgeerr.ErrMalformedStoreURL, err)
	}
	return u.String(), nil
}

// Open builds the listing URL for the app id and launches it with the given opener (DefaultOpener when nil).
func Open(ctx context.Context, appID string, opener Opener) error {
	storeURL, err := StoreURL(appID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opener == nil {
		opener = DefaultOpener
	}
	log.Infof("opening store listing: %s", storeURL)
	if err := opener(storeURL); err != nil {
		return fmt.Errorf("unable to open %s: %w", storeURL, err)
	}
	return nil
}
