package cmd

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/presenter"
	"github.com/nudgeworks/nudge/nudge/version"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the effective alert rule for each update severity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRules(cmd.OutOrStdout(), appConfig.Rules.Policy, appConfig.Alert.Strings)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func showRules(out io.Writer, p policy.Policy, strs presenter.Strings) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Severity", "Alert", "Frequency", "Buttons"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, severity := range version.Severities {
		rule := p.RuleFor(severity)
		var labels []string
		for _, action := range presenter.Options(rule.AlertType) {
			labels = append(labels, strs.WithDefaults().Label(action))
		}
		buttons := strings.Join(labels, " | ")
		if buttons == "" {
			buttons = "(silent)"
		}
		table.Rich(
			[]string{severity.String(), rule.AlertType.String(), rule.Frequency.String(), buttons},
			[]tablewriter.Colors{{}, alertTypeColor(rule.AlertType), {}, {}},
		)
	}

	table.Render()
	return nil
}

func alertTypeColor(a policy.AlertType) tablewriter.Colors {
	switch a {
	case policy.ForceAlert:
		return tablewriter.Colors{tablewriter.Bold, tablewriter.FgRedColor}
	case policy.SkipAlert:
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgYellowColor}
	case policy.NoAlert:
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgHiBlackColor}
	}
	return tablewriter.Colors{tablewriter.Normal, tablewriter.FgGreenColor}
}

