package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/nudgeworks/nudge/internal/format"
	"github.com/nudgeworks/nudge/nudge/state"
)

var stateOutputFormat string

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the remembered alert history of the app",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return requireApp(false)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		st, err := store.Get()
		if err != nil {
			return err
		}
		return showState(cmd.OutOrStdout(), store.Location(), st, format.Parse(stateOutputFormat))
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the alert history of the app",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return requireApp(false)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.Reset(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "alert history cleared for %s\n", appConfig.App.BundleID)
		return err
	},
}

func init() {
	stateCmd.Flags().StringVarP(&stateOutputFormat, "output", "o", "text", fmt.Sprintf("format to show the state, options=%v", format.AvailableFormats))

	stateCmd.AddCommand(stateResetCmd)
	rootCmd.AddCommand(stateCmd)
}

func showState(out io.Writer, location string, st state.State, f format.Format) error {
	switch f {
	case format.TextFormat:
		lastAlert := "never"
		if st.LastAlertDate != nil {
			lastAlert = st.LastAlertDate.Format("2006-01-02T15:04:05Z07:00")
		}
		skipped := st.SkippedVersion
		if skipped == "" {
			skipped = "(none)"
		}
		_, err := fmt.Fprintf(out, "Location:           %s\nLast alert:         %s\nSkipped version:    %s\nPending next check: %t\n",
			location, lastAlert, skipped, st.PendingNextLaunchCheck)
		return err
	case format.JSONFormat:
		enc := json.NewEncoder(out)
		enc.SetIndent("", " ")
		return enc.Encode(st)
	case format.YAMLFormat:
		// reuse the json field names and date format
		by, err := json.Marshal(st)
		if err != nil {
			return err
		}
		var doc yaml.MapSlice
		if err := yaml.Unmarshal(by, &doc); err != nil {
			return err
		}
		by, err = yaml.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = out.Write(by)
		return err
	}
	return fmt.Errorf("unsupported output format: %s", f)
}
