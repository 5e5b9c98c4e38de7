package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"

	"github.com/nudgeworks/nudge/internal"
	"github.com/nudgeworks/nudge/nudge"
	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/policy"
)

const fieldFormat = "   %-10s %s\n"

var auxInfoFormat = color.HEX("#777777")

type textPresenter struct {
	report Report
}

func (p textPresenter) Present(output io.Writer) error {
	res := p.report.Result
	if res == nil {
		_, err := fmt.Fprintf(output, "%s: no check result\n", p.report.AppIdentifier)
		return err
	}

	sb := &strings.Builder{}
	outcome := res.Outcome

	switch {
	case outcome.IsAlert():
		title := fmt.Sprintf("%s: %s update available", p.report.AppIdentifier, outcome.Severity)
		sb.WriteString(fmt.Sprintf("%s %s\n", color.Green.Sprint("✔"), color.Bold.Sprint(title)))
	default:
		title := fmt.Sprintf("%s: no alert", p.report.AppIdentifier)
		sb.WriteString(fmt.Sprintf("%s %s %s\n", color.Gray.Sprint("-"), color.Bold.Sprint(title),
			auxInfoFormat.Sprintf("(%s)", outcome.Reason.Description())))
	}

	if res.Lookup != nil {
		sb.WriteString(fmt.Sprintf(fieldFormat, "store:", res.Lookup.Version))
		if res.Lookup.ReleaseDate != nil {
			released := humanize.RelTime(*res.Lookup.ReleaseDate, p.report.Now, "ago", "from now")
			sb.WriteString(fmt.Sprintf(fieldFormat, "released:", released))
		}
		if res.Lookup.MinimumOSVersion != "" {
			sb.WriteString(fmt.Sprintf(fieldFormat, "min OS:", res.Lookup.MinimumOSVersion))
		}
	}

	if res.Alert != nil {
		sb.WriteString(fmt.Sprintf(fieldFormat, "installed:", res.Alert.InstalledVersion))
		sb.WriteString(fmt.Sprintf(fieldFormat, "rule:", describeRule(outcome.Rule)))
		sb.WriteString(fmt.Sprintf(fieldFormat, "response:", describeResponse(res)))
	}

	_, err := io.WriteString(output, sb.String())
	return err
}

func describeRule(r policy.Rule) string {
	return fmt.Sprintf("%s alert, %s", r.AlertType, r.Frequency)
}

func describeResponse(res *nudge.Result) string {
	switch {
	case res.AwaitingResponse:
		hint := fmt.Sprintf("%s resolve <%s> --store-version %s", internal.ApplicationName,
			strings.Join(actionNames(res.Alert.Options()), "|"), res.Alert.StoreVersion)
		return "awaiting " + auxInfoFormat.Sprintf("(report it with: %s)", hint)
	case !res.Alert.Rule.AlertType.Interactive():
		return "none " + auxInfoFormat.Sprint("(silent alert)")
	case res.Action == gate.UnknownAction:
		return "none"
	}
	return res.Action.String()
}

func actionNames(actions []gate.Action) []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, a.String())
	}
	return names
}
