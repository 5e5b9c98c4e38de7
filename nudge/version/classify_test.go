package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nudgeworks/nudge/nudge/nudgeerr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		store     string
		expected  Severity
	}{
		{name: "same version", installed: "1.2.3", store: "1.2.3", expected: NoneSeverity},
		{name: "same version different lengths", installed: "1.2", store: "1.2.0", expected: NoneSeverity},
		{name: "store is older", installed: "2.0.0", store: "1.9.9", expected: NoneSeverity},
		{name: "store is older at revision", installed: "1.2.3.4", store: "1.2.3.1", expected: NoneSeverity},
		{name: "major", installed: "1.0.0", store: "2.0.0", expected: MajorSeverity},
		{name: "major with lower minor", installed: "1.9.9", store: "2.0.0", expected: MajorSeverity},
		{name: "minor", installed: "2.0.0", store: "2.1.0", expected: MinorSeverity},
		{name: "patch", installed: "1.2.3", store: "1.2.4", expected: PatchSeverity},
		{name: "shorter installed is zero padded", installed: "1.2", store: "1.2.1", expected: PatchSeverity},
		{name: "shorter store is zero padded", installed: "1.2.0.0", store: "1.3", expected: MinorSeverity},
		{name: "revision", installed: "1.2.3", store: "1.2.3.1", expected: RevisionSeverity},
		{name: "deep revision", installed: "1.2.3.4.5", store: "1.2.3.4.6", expected: RevisionSeverity},
		{name: "single segment", installed: "3", store: "4", expected: MajorSeverity},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := Classify(MustParse(test.installed), MustParse(test.store))
			assert.Equal(t, test.expected, actual, "got %s", actual)
		})
	}
}

func TestClassify_identityIsNone(t *testing.T) {
	for _, v := range []string{"0", "1", "1.0", "1.2.3", "10.20.30.40", "0.0.0.0.1"} {
		assert.Equal(t, NoneSeverity, Classify(MustParse(v), MustParse(v)), v)
	}
}

func TestClassify_earlierDifferenceIsAtLeastAsSevere(t *testing.T) {
	installed := MustParse("1.1.1.1")
	candidates := []string{
		"2.1.1.1", // index 0
		"1.2.1.1", // index 1
		"1.1.2.1", // index 2
		"1.1.1.2", // index 3
	}

	var previous *Severity
	for _, candidate := range candidates {
		current := Classify(installed, MustParse(candidate))
		if previous != nil {
			assert.GreaterOrEqual(t, int(*previous), int(current), "%s should not outrank an earlier differing index", candidate)
		}
		previous = &current
	}
}

func TestClassify_nil(t *testing.T) {
	assert.Equal(t, NoneSeverity, Classify(nil, MustParse("1.0")))
	assert.Equal(t, NoneSeverity, Classify(MustParse("1.0"), nil))
}

func TestClassifyStrings(t *testing.T) {
	severity, err := ClassifyStrings("2.0.0", "2.1.0")
	require.NoError(t, err)
	assert.Equal(t, MinorSeverity, severity)

	_, err = ClassifyStrings("2.0.0", "2.1.0-rc1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nudgeerr.ErrMalformedVersion))

	_, err = ClassifyStrings("", "2.1.0")
	assert.True(t, errors.Is(err, nudgeerr.ErrMalformedVersion))
}

func TestSeverity_ordering(t *testing.T) {
	assert.Less(t, int(NoneSeverity), int(RevisionSeverity))
	assert.Less(t, int(RevisionSeverity), int(PatchSeverity))
	assert.Less(t, int(PatchSeverity), int(MinorSeverity))
	assert.Less(t, int(MinorSeverity), int(MajorSeverity))
}

func TestParseSeverity(t *testing.T) {
	for _, s := range append(Severities, NoneSeverity) {
		assert.Equal(t, s, ParseSeverity(s.String()))
	}
	assert.Equal(t, MajorSeverity, ParseSeverity(" MAJOR "))
	assert.Equal(t, RevisionSeverity, ParseSeverity("build"))
	assert.Equal(t, NoneSeverity, ParseSeverity("critical"))
	assert.Equal(t, "none", Severity(42).String())
}
