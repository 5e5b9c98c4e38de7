package cmd

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the store listing of the app",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return requireApp(false)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(nil)
		if err != nil {
			return err
		}
		return m.OpenStoreListing(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
