package gate

import (
	"errors"
	"fmt"
	"time"

	"github.com/nudgeworks/nudge/internal/log"
	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/state"
	"github.com/nudgeworks/nudge/nudge/version"
)

const day = 24 * time.Hour

// Gate decides whether an available update should be presented, and records the user's answer.
type Gate struct {
	policy policy.Policy
	store  state.Store
	now    func() time.Time
}

type Option func(*Gate)

// WithClock replaces the wall clock used when a DecisionContext carries no explicit time.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

func New(p policy.Policy, store state.Store, opts ...Option) (*Gate, error) {
	if store == nil {
		return nil, errors.New("a state store is required")
	}
	g := &Gate{
		policy: p,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Gate) Policy() policy.Policy {
	return g.policy
}

// Decide runs the ordered checks against the context, stopping at the first one that suppresses the alert. When
// the result is an Alert the alert time has already been persisted.
func (g *Gate) Decide(dc DecisionContext) (Outcome, error) {
	now := dc.Now
	if now.IsZero() {
		now = g.now()
	}

	st := dc.State
	if st == nil {
		loaded, err := g.store.Get()
		if err != nil {
			return Outcome{}, fmt.Errorf("unable to read state: %w", err)
		}
		st = &loaded
	}

	compatible, err := osCompatible(dc.CurrentOSVersion, dc.MinimumOSVersion)
	if err != nil {
		return Outcome{}, err
	}
	if !compatible {
		return g.suppress(Suppressed(ReasonOSUnsupported)), nil
	}

	if field := missingField(dc); field != "" {
		return g.suppress(dataMissing(field)), nil
	}

	installed, err := version.Parse(dc.InstalledVersion)
	if err != nil {
		return Outcome{}, fmt.Errorf("invalid installed version: %w", err)
	}
	store, err := version.Parse(dc.StoreVersion)
	if err != nil {
		return Outcome{}, fmt.Errorf("invalid store version: %w", err)
	}

	severity := version.Classify(installed, store)
	if severity == version.NoneSeverity {
		return g.suppress(Suppressed(ReasonNoUpdate)), nil
	}

	if daysSince(*dc.ReleaseDate, now) < dc.ReleaseAgeThreshold {
		return g.suppress(Suppressed(ReasonReleasedTooSoon)), nil
	}

	rule := g.policy.RuleFor(severity)
	log.Debugf("severity=%s %s", severity, rule)

	if st.SkippedVersion != "" && !sameVersion(st.SkippedVersion, store) {
		return g.suppress(Suppressed(ReasonSkipVersionUpdate)), nil
	}

	switch {
	case rule.Frequency.IsImmediate():
	case st.PendingNextLaunchCheck:
	case st.LastAlertDate == nil:
	case daysSince(*st.LastAlertDate, now) >= rule.Frequency.Days():
	default:
		return g.suppress(Suppressed(ReasonRecentlyChecked)), nil
	}

	// any alert consumes a pending next-launch check
	if st.PendingNextLaunchCheck {
		if err := g.store.SetPendingNextLaunchCheck(false); err != nil {
			return Outcome{}, fmt.Errorf("unable to clear pending check: %w", err)
		}
	}

	if err := g.store.SetLastAlertDate(now); err != nil {
		return Outcome{}, fmt.Errorf("unable to record alert date: %w", err)
	}

	outcome := Alert(rule, severity)
	log.Infof("update %s -> %s: %s", dc.InstalledVersion, dc.StoreVersion, outcome)
	return outcome, nil
}

// Resolve applies the action a user chose for an alert about storeVersion.
func (g *Gate) Resolve(action Action, storeVersion string) error {
	log.Debugf("resolving alert for store version %q with action=%s", storeVersion, action)
	switch action {
	case UpdateAction, UnknownAction:
		return nil
	case NextTimeAction:
		return g.store.SetPendingNextLaunchCheck(true)
	case SkipAction:
		if storeVersion == "" {
			return errors.New("a store version is required to skip it")
		}
		return g.store.SetSkippedVersion(storeVersion)
	}
	return fmt.Errorf("unsupported action: %d", action)
}

// sameVersion reports whether the skipped version names the store version. A skipped value that does not parse
// is compared verbatim.
func sameVersion(skipped string, store *version.Version) bool {
	v, err := version.Parse(skipped)
	if err != nil {
		return skipped == store.Raw
	}
	return v.Equal(store)
}

func (g *Gate) suppress(o Outcome) Outcome {
	log.Infof("check suppressed: %s", o)
	return o
}

func osCompatible(current, minimum string) (bool, error) {
	if current == "" {
		return true, nil
	}
	currentVer, err := version.Parse(current)
	if err != nil {
		return false, fmt.Errorf("invalid current OS version: %w", err)
	}
	if minimum == "" {
		return false, nil
	}
	minimumVer, err := version.Parse(minimum)
	if err != nil {
		log.Warnf("unable to compare against minimum OS version %q: %+v", minimum, err)
		return false, nil
	}
	return !currentVer.LessThan(minimumVer), nil
}

func missingField(dc DecisionContext) string {
	switch {
	case dc.AppID == "":
		return "appID"
	case dc.StoreVersion == "":
		return "version"
	case dc.ReleaseDate == nil || dc.ReleaseDate.IsZero():
		return "releaseDate"
	}
	return ""
}

// daysSince counts the whole days elapsed between t and now; times in the future count as zero.
func daysSince(t, now time.Time) int {
	elapsed := now.Sub(t)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / day)
}
