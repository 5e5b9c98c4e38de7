package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nudgeworks/nudge/nudge/lookup"
	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/presenter"
	"github.com/nudgeworks/nudge/nudge/version"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0600))
	return p
}

func load(t *testing.T, contents string, opts CliOnlyOptions) (*Application, error) {
	t.Helper()
	opts.ConfigPath = writeConfig(t, contents)
	return LoadApplicationConfig(viper.New(), opts)
}

func TestLoadApplicationConfig_defaults(t *testing.T) {
	cfg, err := load(t, "", CliOnlyOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"text"}, cfg.Output)
	assert.Equal(t, PromptPresenter, cfg.Presenter)
	assert.Equal(t, 1, cfg.ReleaseAgeDays)
	assert.Equal(t, lookup.DefaultURL, cfg.Lookup.URL)
	assert.Equal(t, "us", cfg.Lookup.Country)
	assert.Equal(t, lookup.DefaultTimeout, cfg.Lookup.Timeout)
	assert.Equal(t, presenter.DefaultStrings, cfg.Alert.Strings)
	assert.Equal(t, logrus.WarnLevel, cfg.Log.LevelOpt)
	assert.NotEmpty(t, cfg.State.Dir)
	assert.Equal(t, cfg.CliOptions.ConfigPath, cfg.ConfigPath)

	for _, severity := range version.Severities {
		assert.Equal(t, policy.DefaultRule, cfg.Rules.Policy.RuleFor(severity), severity.String())
	}
}

func TestLoadApplicationConfig_fromFile(t *testing.T) {
	cfg, err := load(t, `
presenter: Skip
release-age-days: 3
app:
  bundle-id: com.example.App
  name: Example
  installed-version: 1.2.3
  os-version: "14.1"
lookup:
  country: gb
  timeout: 5s
rules:
  preset: critical
  patch:
    alert-type: skip
  revision:
    alert-type: none
    frequency: weekly
alert:
  title: "{{ .AppName }} {{ .StoreVersion }}"
  skip-button: Ignore
state:
  dir: /tmp/nudge-state
`, CliOnlyOptions{})
	require.NoError(t, err)

	assert.Equal(t, SkipPresenter, cfg.Presenter)
	assert.Equal(t, 3, cfg.ReleaseAgeDays)
	assert.Equal(t, "com.example.App", cfg.App.BundleID)
	assert.Equal(t, "Example", cfg.App.Name)
	assert.Equal(t, "1.2.3", cfg.App.InstalledVersion)
	assert.Equal(t, "14.1", cfg.App.OSVersion)
	assert.Equal(t, lookup.Config{URL: lookup.DefaultURL, Timeout: 5 * time.Second}, cfg.Lookup.ToClientConfig())
	assert.Equal(t, "gb", cfg.Lookup.Country)
	assert.Equal(t, "/tmp/nudge-state", cfg.State.Dir)

	assert.Equal(t, "{{ .AppName }} {{ .StoreVersion }}", cfg.Alert.Title)
	assert.Equal(t, "Ignore", cfg.Alert.SkipButton)
	assert.Equal(t, presenter.DefaultStrings.UpdateButton, cfg.Alert.UpdateButton)

	p := cfg.Rules.Policy
	assert.Equal(t, policy.Rule{AlertType: policy.ForceAlert, Frequency: policy.Immediately}, p.RuleFor(version.MajorSeverity))
	assert.Equal(t, policy.Rule{AlertType: policy.ForceAlert, Frequency: policy.Immediately}, p.RuleFor(version.MinorSeverity))
	assert.Equal(t, policy.Rule{AlertType: policy.SkipAlert, Frequency: policy.Immediately}, p.RuleFor(version.PatchSeverity))
	assert.Equal(t, policy.Rule{AlertType: policy.NoAlert, Frequency: policy.Weekly}, p.RuleFor(version.RevisionSeverity))
}

func TestLoadApplicationConfig_env(t *testing.T) {
	t.Setenv("NUDGE_APP_BUNDLE_ID", "com.example.FromEnv")
	t.Setenv("NUDGE_LOOKUP_COUNTRY", "de")

	cfg, err := load(t, "app:\n  bundle-id: com.example.FromFile\n", CliOnlyOptions{})
	require.NoError(t, err)
	assert.Equal(t, "com.example.FromEnv", cfg.App.BundleID)
	assert.Equal(t, "de", cfg.Lookup.Country)
}

func TestLoadApplicationConfig_invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		errMsg   string
	}{
		{
			name:     "presenter",
			contents: "presenter: popup",
			errMsg:   `bad presenter value "popup"`,
		},
		{
			name:     "negative release age",
			contents: "release-age-days: -1",
			errMsg:   "release-age-days must not be negative",
		},
		{
			name:     "unknown preset",
			contents: "rules:\n  preset: nagging",
			errMsg:   `unknown rule preset "nagging"`,
		},
		{
			name:     "bad alert type",
			contents: "rules:\n  major:\n    alert-type: modal",
			errMsg:   "bad major rule",
		},
		{
			name:     "bad frequency",
			contents: "rules:\n  minor:\n    frequency: fortnightly",
			errMsg:   "bad minor rule",
		},
		{
			name:     "bad template",
			contents: "alert:\n  message: \"{{ .Nope \"",
			errMsg:   "message",
		},
		{
			name:     "duplicate labels",
			contents: "alert:\n  update-button: OK\n  skip-button: OK",
			errMsg:   "must differ",
		},
		{
			name:     "installed version",
			contents: "app:\n  installed-version: one.two",
			errMsg:   "bad installed version",
		},
		{
			name:     "os version",
			contents: "app:\n  os-version: latest",
			errMsg:   "bad OS version",
		},
		{
			name:     "log level",
			contents: "log:\n  level: loud",
			errMsg:   `bad log level "loud"`,
		},
		{
			name:     "negative timeout",
			contents: "lookup:\n  timeout: -1s",
			errMsg:   "lookup timeout must not be negative",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := load(t, test.contents, CliOnlyOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid application config")
			assert.Contains(t, err.Error(), test.errMsg)
		})
	}
}

func TestLoadApplicationConfig_missingExplicitConfig(t *testing.T) {
	_, err := LoadApplicationConfig(viper.New(), CliOnlyOptions{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read application config")
}

func TestParseLogLevelOption(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Application
		expected      logrus.Level
		wantVerbosity uint
	}{
		{
			name:     "default",
			expected: logrus.WarnLevel,
		},
		{
			name:     "quiet",
			cfg:      Application{Quiet: true, CliOptions: CliOnlyOptions{Verbosity: 3}},
			expected: logrus.PanicLevel,
		},
		{
			name:     "quiet with log file",
			cfg:      Application{Quiet: true, Log: logging{FileLocation: "/tmp/nudge.log"}},
			expected: logrus.WarnLevel,
		},
		{
			name:     "-v",
			cfg:      Application{CliOptions: CliOnlyOptions{Verbosity: 1}},
			expected: logrus.InfoLevel,
		},
		{
			name:     "-vv",
			cfg:      Application{CliOptions: CliOnlyOptions{Verbosity: 2}},
			expected: logrus.DebugLevel,
		},
		{
			name:     "-vvvv",
			cfg:      Application{CliOptions: CliOnlyOptions{Verbosity: 4}},
			expected: logrus.TraceLevel,
		},
		{
			name:          "configured level",
			cfg:           Application{Log: logging{Level: "debug"}},
			expected:      logrus.DebugLevel,
			wantVerbosity: 1,
		},
		{
			name:     "configured quiet level",
			cfg:      Application{Log: logging{Level: "error"}},
			expected: logrus.ErrorLevel,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := test.cfg
			require.NoError(t, cfg.parseLogLevelOption())
			assert.Equal(t, test.expected, cfg.Log.LevelOpt)
			assert.Equal(t, test.wantVerbosity, cfg.Verbosity)
			assert.NotEmpty(t, cfg.Log.Level)
		})
	}
}

func TestApplication_String(t *testing.T) {
	cfg, err := load(t, "app:\n  bundle-id: com.example.App\n", CliOnlyOptions{})
	require.NoError(t, err)

	s := cfg.String()
	assert.Contains(t, s, "bundle-id: com.example.App")
	assert.Contains(t, s, "update-button: Update")
	assert.NotContains(t, s, "levelopt")
}
