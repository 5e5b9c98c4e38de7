package cmd

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/nudgeworks/nudge/internal/version"
	"github.com/nudgeworks/nudge/nudge"
	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/lookup"
	"github.com/nudgeworks/nudge/nudge/presenter"
	"github.com/nudgeworks/nudge/nudge/state"
)

func newStore() (*state.FileStore, error) {
	store, err := state.NewFileStore(afero.NewOsFs(), appConfig.State.Dir, appConfig.App.BundleID)
	if err != nil {
		return nil, fmt.Errorf("unable to open state store: %w", err)
	}
	return store, nil
}

func newGate() (*gate.Gate, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}
	return gate.New(appConfig.Rules.Policy, store)
}

// newManager wires the configured lookup client, state store and rules; a nil presenter leaves alerts pending.
func newManager(p presenter.Presenter) (*nudge.Manager, error) {
	g, err := newGate()
	if err != nil {
		return nil, err
	}

	clientCfg := appConfig.Lookup.ToClientConfig()
	clientCfg.UserAgent = version.FromBuild().UserAgent()
	client, err := lookup.NewClient(clientCfg)
	if err != nil {
		return nil, err
	}

	var opts []nudge.Option
	if p != nil {
		opts = append(opts, nudge.WithPresenter(p))
	}

	return nudge.NewManager(nudge.Config{
		AppIdentifier:       appConfig.App.BundleID,
		AppName:             appConfig.App.Name,
		Region:              appConfig.Lookup.Country,
		InstalledVersion:    appConfig.App.InstalledVersion,
		CurrentOSVersion:    appConfig.App.OSVersion,
		AppID:               appConfig.App.AppID,
		ReleaseAgeThreshold: appConfig.ReleaseAgeDays,
		Strings:             appConfig.Alert.Strings,
	}, client, g, opts...)
}
