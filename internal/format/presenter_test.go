package format

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/nudgeworks/nudge/nudge"
	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/lookup"
	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/presenter"
	"github.com/nudgeworks/nudge/nudge/version"
)

var testNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func suppressedResult() *nudge.Result {
	released := testNow.Add(-72 * time.Hour)
	return &nudge.Result{
		Outcome: gate.Suppressed(gate.ReasonNoUpdate),
		Lookup: &lookup.Result{
			AppID:       "1234567890",
			Version:     "1.2.3",
			ReleaseDate: &released,
		},
	}
}

func alertResult(rule policy.Rule, action gate.Action, awaiting bool) *nudge.Result {
	released := testNow.Add(-72 * time.Hour)
	return &nudge.Result{
		Outcome: gate.Alert(rule, version.MinorSeverity),
		Lookup: &lookup.Result{
			AppID:            "1234567890",
			Version:          "1.3.0",
			MinimumOSVersion: "15.0",
			ReleaseDate:      &released,
		},
		Alert: &presenter.Alert{
			InstalledVersion: "1.2.3",
			StoreVersion:     "1.3.0",
			Severity:         version.MinorSeverity,
			Rule:             rule,
		},
		Action:           action,
		AwaitingResponse: awaiting,
	}
}

func withoutColor(t *testing.T) {
	t.Helper()
	previous := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = previous })
}

func present(t *testing.T, f Format, r Report) string {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, GetPresenter(f, r).Present(buf))
	return buf.String()
}

func TestTextPresenter(t *testing.T) {
	withoutColor(t)

	skipWeekly := policy.Rule{AlertType: policy.SkipAlert, Frequency: policy.Weekly}

	tests := []struct {
		name     string
		result   *nudge.Result
		contains []string
		excludes []string
	}{
		{
			name:   "suppressed",
			result: suppressedResult(),
			contains: []string{
				"com.example.app: no alert (the installed version is up to date)",
				"store:     1.2.3",
				"released:  3 days ago",
			},
			excludes: []string{"response:"},
		},
		{
			name:   "answered alert",
			result: alertResult(skipWeekly, gate.NextTimeAction, false),
			contains: []string{
				"com.example.app: minor update available",
				"installed: 1.2.3",
				"min OS:    15.0",
				"rule:      skip alert, weekly",
				"response:  next-time",
			},
		},
		{
			name:   "awaiting response",
			result: alertResult(skipWeekly, gate.UnknownAction, true),
			contains: []string{
				"response:  awaiting (report it with: nudge resolve <next-time|update|skip> --store-version 1.3.0)",
			},
		},
		{
			name:     "silent alert",
			result:   alertResult(policy.Rule{AlertType: policy.NoAlert}, gate.UnknownAction, false),
			contains: []string{"response:  none (silent alert)"},
		},
		{
			name:     "no result",
			contains: []string{"com.example.app: no check result"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := present(t, TextFormat, Report{AppIdentifier: "com.example.app", Result: test.result, Now: testNow})
			for _, s := range test.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range test.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestJSONPresenter(t *testing.T) {
	rule := policy.Rule{AlertType: policy.OptionAlert, Frequency: policy.Daily}
	out := present(t, JSONFormat, Report{
		AppIdentifier: "com.example.app",
		Result:        alertResult(rule, gate.UpdateAction, false),
		Now:           testNow,
	})

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "com.example.app", doc["appIdentifier"])
	assert.Equal(t, "update", doc["action"])

	outcome, ok := doc["outcome"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alert", outcome["kind"])
	assert.Equal(t, "minor", outcome["severity"])
	assert.Equal(t, map[string]interface{}{"alertType": "option", "frequency": "daily"}, outcome["rule"])
}

func TestYAMLPresenter(t *testing.T) {
	out := present(t, YAMLFormat, Report{AppIdentifier: "com.example.app", Result: suppressedResult(), Now: testNow})

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "com.example.app", doc["appIdentifier"])
	assert.Contains(t, out, "reason: noUpdate")
}

func TestGetPresenter_unknown(t *testing.T) {
	assert.Nil(t, GetPresenter(UnknownFormat, Report{}))
}
