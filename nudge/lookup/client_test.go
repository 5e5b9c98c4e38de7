package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nudgeworks/nudge/nudge/nudgeerr"
)

const fullResponse = `{
 "resultCount": 1,
 "results": [
  {
   "trackId": 1234567890,
   "bundleId": "com.example.app",
   "version": "2.1.0",
   "minimumOsVersion": "15.0",
   "currentVersionReleaseDate": "2024-06-05T07:00:00Z",
   "trackViewUrl": "https://apps.apple.com/us/app/example/id1234567890",
   "releaseNotes": "Bug fixes."
  }
 ]
}`

type recorder struct {
	lock     sync.Mutex
	requests []*http.Request
}

func (r *recorder) all() []*http.Request {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*http.Request(nil), r.requests...)
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.lock.Lock()
		rec.requests = append(rec.requests, r)
		rec.lock.Unlock()
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{URL: url, MinInterval: time.Millisecond})
	require.NoError(t, err)
	return c
}

func TestClient_Fetch(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, fullResponse)
	c := newTestClient(t, srv.URL+"/lookup")

	actual, err := c.Fetch(context.Background(), "com.example.app", "GB")
	require.NoError(t, err)

	released := time.Date(2024, 6, 5, 7, 0, 0, 0, time.UTC)
	expected := &Result{
		AppID:            "1234567890",
		Version:          "2.1.0",
		MinimumOSVersion: "15.0",
		ReleaseDate:      &released,
		TrackViewURL:     "https://apps.apple.com/us/app/example/id1234567890",
		ReleaseNotes:     "Bug fixes.",
	}
	if d := cmp.Diff(expected, actual); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}

	reqs := requests.all()
	require.Len(t, reqs, 1)
	q := reqs[0].URL.Query()
	assert.Equal(t, "/lookup", reqs[0].URL.Path)
	assert.Equal(t, "com.example.app", q.Get("bundleId"))
	assert.Equal(t, "gb", q.Get("country"))
}

func TestClient_Fetch_noRegion(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, fullResponse)
	c := newTestClient(t, srv.URL)

	_, err := c.Fetch(context.Background(), "com.example.app", "")
	require.NoError(t, err)
	reqs := requests.all()
	require.Len(t, reqs, 1)
	assert.False(t, reqs[0].URL.Query().Has("country"))
}

func TestClient_Fetch_userAgent(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, fullResponse)
	c, err := NewClient(Config{URL: srv.URL, MinInterval: time.Millisecond, UserAgent: "nudge/1.0.0"})
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "com.example.app", "")
	require.NoError(t, err)
	reqs := requests.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "nudge/1.0.0", reqs[0].Header.Get("User-Agent"))
}

func TestClient_Fetch_partialMetadata(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"resultCount": 1, "results": [{"version": "2.1.0"}]}`)
	c := newTestClient(t, srv.URL)

	actual, err := c.Fetch(context.Background(), "com.example.app", "us")
	require.NoError(t, err)
	assert.Equal(t, &Result{Version: "2.1.0"}, actual)
}

func TestClient_Fetch_errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     "oops",
			expected: nudgeerr.ErrNetworkFailure,
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     "<html></html>",
			expected: nudgeerr.ErrParseFailure,
		},
		{
			name:     "bad release date",
			status:   http.StatusOK,
			body:     `{"resultCount": 1, "results": [{"version": "2.1.0", "currentVersionReleaseDate": "last tuesday"}]}`,
			expected: nudgeerr.ErrParseFailure,
		},
		{
			name:     "no results",
			status:   http.StatusOK,
			body:     `{"resultCount": 0, "results": []}`,
			expected: nudgeerr.ErrNoResultsFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv, _ := newTestServer(t, test.status, test.body)
			c := newTestClient(t, srv.URL)

			_, err := c.Fetch(context.Background(), "com.example.app", "us")
			require.Error(t, err)
			assert.ErrorIs(t, err, test.expected)
		})
	}
}

func TestClient_Fetch_unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.Fetch(context.Background(), "com.example.app", "us")
	assert.ErrorIs(t, err, nudgeerr.ErrNetworkFailure)
}

func TestClient_Fetch_cancelled(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, fullResponse)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, "com.example.app", "us")
	assert.ErrorIs(t, err, nudgeerr.ErrNetworkFailure)
	assert.Empty(t, requests.all())
}

func TestClient_Fetch_emptyIdentifier(t *testing.T) {
	c := newTestClient(t, "")
	_, err := c.Fetch(context.Background(), "", "us")
	require.Error(t, err)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)

	c, err = NewClient(Config{Timeout: 3 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.client.Timeout)

	_, err = NewClient(Config{URL: "ftp://example.com/lookup"})
	require.Error(t, err)
}
