package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return emit(cmd, map[string]string{
			"version": buildVersion,
			"commit":  buildCommit,
			"date":    buildDate,
		})
	},
}
