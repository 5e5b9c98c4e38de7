package gate

import (
	"fmt"
	"strings"

	"github.com/nudgeworks/nudge/nudge/nudgeerr"
	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/version"
)

const (
	UnknownKind Kind = iota
	AlertKind
	SuppressedKind
)

// Kind distinguishes an alert from a suppressed check.
type Kind int

var kindStr = []string{
	"unknown",
	"alert",
	"suppressed",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) || k < 0 {
		return kindStr[0]
	}
	return kindStr[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reason names why a check was suppressed.
type Reason string

const (
	ReasonOSUnsupported     Reason = "osUnsupported"
	ReasonDataMissing       Reason = "dataMissing"
	ReasonNoUpdate          Reason = "noUpdate"
	ReasonReleasedTooSoon   Reason = "releasedTooSoon"
	ReasonSkipVersionUpdate Reason = "skipVersionUpdate"
	ReasonRecentlyChecked   Reason = "recentlyChecked"
)

var reasonDescriptions = map[Reason]string{
	ReasonOSUnsupported:     "the store version requires a newer OS",
	ReasonDataMissing:       "the store metadata is incomplete",
	ReasonNoUpdate:          "the installed version is up to date",
	ReasonReleasedTooSoon:   "the store version was released too recently",
	ReasonSkipVersionUpdate: "a version was skipped",
	ReasonRecentlyChecked:   "an alert was shown recently",
}

// Description is a human readable rendering of the reason.
func (r Reason) Description() string {
	if d, ok := reasonDescriptions[r]; ok {
		return d
	}
	return string(r)
}

// Outcome is the result of one check: either an Alert carrying the rule to present, or a suppression reason.
type Outcome struct {
	Kind     Kind             `json:"kind"`
	Rule     policy.Rule      `json:"rule"`
	Severity version.Severity `json:"severity"`
	Reason   Reason           `json:"reason,omitempty"`
	// Field names the missing metadata when Reason is ReasonDataMissing.
	Field string `json:"field,omitempty"`
}

func Alert(rule policy.Rule, severity version.Severity) Outcome {
	return Outcome{
		Kind:     AlertKind,
		Rule:     rule,
		Severity: severity,
	}
}

func Suppressed(reason Reason) Outcome {
	return Outcome{
		Kind:   SuppressedKind,
		Reason: reason,
	}
}

func dataMissing(field string) Outcome {
	o := Suppressed(ReasonDataMissing)
	o.Field = field
	return o
}

func (o Outcome) IsAlert() bool {
	return o.Kind == AlertKind
}

// Err returns the matching taxonomy error for suppressions that stem from unusable store data, nil otherwise.
func (o Outcome) Err() error {
	if o.Kind != SuppressedKind {
		return nil
	}
	switch o.Reason {
	case ReasonOSUnsupported:
		return nudgeerr.ErrOSVersionUnsupported
	case ReasonDataMissing:
		return nudgeerr.NewDataMissingError(o.Field)
	}
	return nil
}

func (o Outcome) String() string {
	switch o.Kind {
	case AlertKind:
		return fmt.Sprintf("Alert(%s, %s)", o.Rule.AlertType, o.Severity)
	case SuppressedKind:
		var sb strings.Builder
		sb.WriteString("Suppressed(")
		sb.WriteString(string(o.Reason))
		if o.Field != "" {
			sb.WriteString(": ")
			sb.WriteString(o.Field)
		}
		sb.WriteString(")")
		return sb.String()
	}
	return "Outcome(unknown)"
}
