package version

import "strings"

const (
	NoneSeverity Severity = iota
	RevisionSeverity
	PatchSeverity
	MinorSeverity
	MajorSeverity
)

// Severity is the magnitude of an available upgrade; the integer values are ordered none < revision < patch < minor < major.
type Severity int

var severityStr = []string{
	"none",
	"revision",
	"patch",
	"minor",
	"major",
}

// Severities lists every severity that can select a rule (none never does).
var Severities = []Severity{
	MajorSeverity,
	MinorSeverity,
	PatchSeverity,
	RevisionSeverity,
}

func ParseSeverity(userStr string) Severity {
	switch strings.ToLower(strings.TrimSpace(userStr)) {
	case "major":
		return MajorSeverity
	case "minor":
		return MinorSeverity
	case "patch":
		return PatchSeverity
	case "revision", "build":
		return RevisionSeverity
	default:
		return NoneSeverity
	}
}

func (s Severity) String() string {
	if int(s) < 0 || int(s) >= len(severityStr) {
		return severityStr[NoneSeverity]
	}
	return severityStr[s]
}

// MarshalText allows severities to be used as map keys in json/yaml output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	*s = ParseSeverity(string(text))
	return nil
}

// severityAtIndex maps the first differing segment index to a severity.
func severityAtIndex(idx int) Severity {
	switch idx {
	case 0:
		return MajorSeverity
	case 1:
		return MinorSeverity
	case 2:
		return PatchSeverity
	default:
		return RevisionSeverity
	}
}
