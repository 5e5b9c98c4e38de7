package nudge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/nudgeworks/nudge/internal/bus"
	"github.com/nudgeworks/nudge/internal/log"
	"github.com/nudgeworks/nudge/nudge/event"
	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/listing"
	"github.com/nudgeworks/nudge/nudge/lookup"
	"github.com/nudgeworks/nudge/nudge/nudgeerr"
	"github.com/nudgeworks/nudge/nudge/presenter"
)

// ErrNoPendingAlert is returned by Resolve when no alert is waiting for a response.
var ErrNoPendingAlert = errors.New("no alert is awaiting a response")

// Config describes the app being checked.
type Config struct {
	// AppIdentifier is the bundle identifier the store is queried with.
	AppIdentifier string
	// AppName is shown in alert messages.
	AppName string
	// Region is the storefront country code ("" for the store default).
	Region string
	// InstalledVersion is the version currently running.
	InstalledVersion string
	// CurrentOSVersion is the running OS version; empty skips the OS compatibility check.
	CurrentOSVersion string
	// AppID is the numeric store id used to open the listing; when empty the id from the lookup is used.
	AppID string
	// ReleaseAgeThreshold is the number of days a release must be public before alerting.
	ReleaseAgeThreshold int
	// Strings are the alert texts.
	Strings presenter.Strings
}

// Result is the product of one completed check.
type Result struct {
	Outcome gate.Outcome `json:"outcome"`
	// Lookup is the store metadata the decision was made from.
	Lookup *lookup.Result `json:"lookup,omitempty"`
	// Alert is set when the outcome is an alert, including silent ones.
	Alert *presenter.Alert `json:"alert,omitempty"`
	// Action is what the user chose, or gate.UnknownAction when nothing was presented.
	Action gate.Action `json:"action"`
	// AwaitingResponse is true when no presenter is configured and the caller must report the choice via Resolve.
	AwaitingResponse bool `json:"awaitingResponse,omitempty"`
}

type Option func(*Manager)

// WithPresenter sets the presenter that renders alerts. Without one the caller presents alerts itself and reports
// the outcome with Manager.Resolve.
func WithPresenter(p presenter.Presenter) Option {
	return func(m *Manager) {
		m.presenter = p
	}
}

// WithOpener replaces how the store listing is launched.
func WithOpener(o listing.Opener) Option {
	return func(m *Manager) {
		m.opener = o
	}
}

// Manager runs version checks for one app. Only one check runs (or waits on a user response) at a time; checks
// triggered meanwhile are dropped.
type Manager struct {
	cfg       Config
	fetcher   lookup.Fetcher
	gate      *gate.Gate
	presenter presenter.Presenter
	opener    listing.Opener

	inProgress atomic.Bool

	lock    sync.Mutex
	pending *presenter.Alert
	lastID  string
}

func NewManager(cfg Config, fetcher lookup.Fetcher, g *gate.Gate, opts ...Option) (*Manager, error) {
	if cfg.AppIdentifier == "" {
		return nil, errors.New("an app identifier is required")
	}
	if fetcher == nil {
		return nil, errors.New("a fetcher is required")
	}
	if g == nil {
		return nil, errors.New("a gate is required")
	}

	m := &Manager{
		cfg:     cfg,
		fetcher: fetcher,
		gate:    g,
		opener:  listing.DefaultOpener,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// StartCheck runs one check in the background and hands the result to completion (which may be nil). It returns
// false, without calling completion, when another check is still in progress.
func (m *Manager) StartCheck(ctx context.Context, completion func(*Result, error)) bool {
	if !m.inProgress.CompareAndSwap(false, true) {
		log.Debug("version check dropped: a check is already in progress")
		return false
	}

	go func() {
		res, err := m.run(ctx)
		if completion != nil {
			completion(res, err)
		}
	}()
	return true
}

// Check runs one check synchronously, failing with nudgeerr.ErrCheckInProgress when another is in progress.
func (m *Manager) Check(ctx context.Context) (*Result, error) {
	if !m.inProgress.CompareAndSwap(false, true) {
		return nil, nudgeerr.ErrCheckInProgress
	}
	return m.run(ctx)
}

// Resolve reports the user's choice for an alert the caller presented itself, and releases the check.
func (m *Manager) Resolve(ctx context.Context, action gate.Action) error {
	m.lock.Lock()
	alert := m.pending
	m.pending = nil
	m.lock.Unlock()

	if alert == nil {
		return ErrNoPendingAlert
	}
	defer m.release()

	return m.apply(ctx, *alert, action)
}

// Pending returns the alert awaiting a response, if any.
func (m *Manager) Pending() *presenter.Alert {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.pending == nil {
		return nil
	}
	a := *m.pending
	return &a
}

// OpenStoreListing launches the app's store page. The configured app id is preferred, then the id seen in the most
// recent lookup; failing both the store is queried for it.
func (m *Manager) OpenStoreListing(ctx context.Context) error {
	appID := m.appID()
	if appID == "" {
		res, err := m.fetcher.Fetch(ctx, m.cfg.AppIdentifier, m.cfg.Region)
		if err != nil {
			return fmt.Errorf("unable to find store listing: %w", err)
		}
		m.rememberAppID(res.AppID)
		appID = res.AppID
	}
	return listing.Open(ctx, appID, m.opener)
}

func (m *Manager) run(ctx context.Context) (res *Result, err error) {
	awaiting := false
	defer func() {
		if !awaiting {
			m.release()
		}
	}()

	mon := newCheckMonitor()
	bus.Publish(partybus.Event{
		Type:   event.CheckStarted,
		Source: m.cfg.AppIdentifier,
		Value:  progress.StagedProgressable(mon),
	})
	defer func() {
		if awaiting {
			mon.finish(stageAwaiting, err)
			return
		}
		mon.finish(stageDone, err)
	}()

	found, err := m.fetcher.Fetch(ctx, m.cfg.AppIdentifier, m.cfg.Region)
	if err != nil {
		return nil, err
	}
	m.rememberAppID(found.AppID)

	mon.advance(stageDeciding)
	outcome, err := m.gate.Decide(gate.DecisionContext{
		InstalledVersion:    m.cfg.InstalledVersion,
		StoreVersion:        found.Version,
		AppID:               found.AppID,
		MinimumOSVersion:    found.MinimumOSVersion,
		CurrentOSVersion:    m.cfg.CurrentOSVersion,
		ReleaseDate:         found.ReleaseDate,
		ReleaseAgeThreshold: m.cfg.ReleaseAgeThreshold,
	})
	if err != nil {
		return nil, err
	}

	res = &Result{
		Outcome: outcome,
		Lookup:  found,
	}

	if !outcome.IsAlert() {
		bus.Publish(partybus.Event{
			Type:   event.CheckSuppressed,
			Source: m.cfg.AppIdentifier,
			Value:  outcome,
		})
		return res, nil
	}

	alert := presenter.Alert{
		AppName:          m.cfg.AppName,
		InstalledVersion: m.cfg.InstalledVersion,
		StoreVersion:     found.Version,
		Severity:         outcome.Severity,
		Rule:             outcome.Rule,
		ReleaseNotes:     found.ReleaseNotes,
		Strings:          m.cfg.Strings,
	}
	res.Alert = &alert

	if !outcome.Rule.AlertType.Interactive() {
		log.Debugf("silent alert for store version %s", found.Version)
		return res, nil
	}

	mon.advance(stagePresenting)
	bus.Publish(partybus.Event{
		Type:   event.AlertPresented,
		Source: m.cfg.AppIdentifier,
		Value:  alert,
	})

	if m.presenter == nil {
		m.lock.Lock()
		m.pending = &alert
		m.lock.Unlock()
		awaiting = true
		res.AwaitingResponse = true
		return res, nil
	}

	action, err := m.presenter.Present(ctx, alert)
	if err != nil {
		return res, fmt.Errorf("unable to present alert: %w", err)
	}
	res.Action = action

	return res, m.apply(ctx, alert, action)
}

func (m *Manager) apply(ctx context.Context, alert presenter.Alert, action gate.Action) error {
	if err := m.gate.Resolve(action, alert.StoreVersion); err != nil {
		return fmt.Errorf("unable to record %s: %w", action, err)
	}

	bus.Publish(partybus.Event{
		Type:   event.ActionResolved,
		Source: m.cfg.AppIdentifier,
		Value:  action,
	})

	if action == gate.UpdateAction {
		return m.OpenStoreListing(ctx)
	}
	return nil
}

func (m *Manager) release() {
	m.inProgress.Store(false)
}

func (m *Manager) appID() string {
	if m.cfg.AppID != "" {
		return m.cfg.AppID
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.lastID
}

func (m *Manager) rememberAppID(id string) {
	if id == "" {
		return
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.lastID = id
}
