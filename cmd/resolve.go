package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nudgeworks/nudge/nudge/gate"
)

var resolveStoreVersion string

var resolveCmd = &cobra.Command{
	Use:   "resolve <update|next-time|skip>",
	Short: "Record the response to an alert presented outside of nudge",
	Long: `Records the choice made on an alert that was left pending (--presenter defer):
    update      opens the store listing
    next-time   alerts again on the next check, regardless of the frequency rule
    skip        suppresses alerts until a newer store version is released (requires --store-version)`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{gate.UpdateAction.String(), gate.NextTimeAction.String(), gate.SkipAction.String()},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return requireApp(false)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := gate.ParseAction(args[0])
		if err != nil {
			return err
		}
		if action == gate.UnknownAction {
			return fmt.Errorf("an action is required (options=%v)", gate.Actions)
		}

		g, err := newGate()
		if err != nil {
			return err
		}
		if err := g.Resolve(action, resolveStoreVersion); err != nil {
			return fmt.Errorf("unable to record %s: %w", action, err)
		}

		if action == gate.UpdateAction {
			m, err := newManager(nil)
			if err != nil {
				return err
			}
			if err := m.OpenStoreListing(cmd.Context()); err != nil {
				return err
			}
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s for %s\n", action, appConfig.App.BundleID)
		return err
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveStoreVersion, "store-version", "", "the store version the alert was shown for")

	rootCmd.AddCommand(resolveCmd)
}
