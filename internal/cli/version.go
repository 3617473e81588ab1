package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if formatter.IsJSON() {
			return formatter.Print(map[string]string{
				"version": buildInfo.Version,
				"commit":  buildInfo.Commit,
				"date":    buildInfo.Date,
			})
		}
		outln(cmd.OutOrStdout(), buildInfo.String())
		return nil
	},
}

//nolint:gochecknoinits // Cobra command registration
func init() {
	rootCmd.AddCommand(versionCmd)
}
