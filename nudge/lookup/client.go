package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"

	"github.com/nudgeworks/nudge/internal/log"
	"github.com/nudgeworks/nudge/nudge/nudgeerr"
)

const (
	DefaultURL     = "https://itunes.apple.com/lookup"
	DefaultTimeout = 30 * time.Second
	defaultRate    = time.Second
)

var _ Fetcher = (*Client)(nil)

type Config struct {
	// URL is the store lookup endpoint.
	URL string
	// Timeout bounds a single lookup request.
	Timeout time.Duration
	// MinInterval is the minimum spacing between consecutive lookups made by one client.
	MinInterval time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
	// UserAgent is sent with every lookup when set.
	UserAgent string
}

// Client queries the App Store lookup API.
type Client struct {
	client      *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

type lookupResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []lookupEntry `json:"results"`
}

type lookupEntry struct {
	TrackID                   int64  `json:"trackId"`
	Version                   string `json:"version"`
	MinimumOSVersion          string `json:"minimumOsVersion"`
	CurrentVersionReleaseDate string `json:"currentVersionReleaseDate"`
	TrackViewURL              string `json:"trackViewUrl"`
	ReleaseNotes              string `json:"releaseNotes"`
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = DefaultURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid lookup URL %q: scheme must be http or https", baseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
		httpClient.Timeout = cfg.Timeout
		if httpClient.Timeout <= 0 {
			httpClient.Timeout = DefaultTimeout
		}
	}

	interval := cfg.MinInterval
	if interval <= 0 {
		interval = defaultRate
	}

	return &Client{
		client:      httpClient,
		baseURL:     baseURL,
		userAgent:   cfg.UserAgent,
		rateLimiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Fetch looks up the app by bundle identifier within the given storefront region ("" for the store's default).
func (c *Client) Fetch(ctx context.Context, appIdentifier, region string) (*Result, error) {
	if appIdentifier == "" {
		return nil, errors.New("empty app identifier")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", nudgeerr.ErrNetworkFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to build request: %v", nudgeerr.ErrNetworkFailure, err)
	}

	q := req.URL.Query()
	q.Set("bundleId", appIdentifier)
	if region != "" {
		q.Set("country", strings.ToLower(region))
	}
	req.URL.RawQuery = q.Encode()
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Debugf("looking up store metadata: %s", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nudgeerr.ErrNetworkFailure, err)
	}
	defer log.CloseAndLogError(resp.Body, req.URL.String())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s from %s", nudgeerr.ErrNetworkFailure, resp.Status, req.URL.String())
	}

	var res lookupResponse
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: %v", nudgeerr.ErrParseFailure, err)
	}

	if len(res.Results) == 0 {
		return nil, fmt.Errorf("%w: bundle id %q (region=%q)", nudgeerr.ErrNoResultsFound, appIdentifier, region)
	}

	return toResult(res.Results[0])
}

func toResult(e lookupEntry) (*Result, error) {
	r := &Result{
		Version:          strings.TrimSpace(e.Version),
		MinimumOSVersion: strings.TrimSpace(e.MinimumOSVersion),
		TrackViewURL:     e.TrackViewURL,
		ReleaseNotes:     e.ReleaseNotes,
	}
	if e.TrackID > 0 {
		r.AppID = strconv.FormatInt(e.TrackID, 10)
	}
	if e.CurrentVersionReleaseDate != "" {
		released, err := time.Parse(time.RFC3339, e.CurrentVersionReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: release date %q: %v", nudgeerr.ErrParseFailure, e.CurrentVersionReleaseDate, err)
		}
		released = released.UTC()
		r.ReleaseDate = &released
	}
	return r, nil
}
