package main

import (
	"github.com/spf13/cobra"

	"github.com/audi70r/gitlog/internal/stats"
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "Print commits grouped by version tag",
	Long: `Group commits into releases. A commit carrying a version tag starts a
release that holds it and the older untagged commits below it. Commits newer
than the latest tag are listed first, without a tag.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		commits, _, err := loadHistory(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Format, stats.Aggregate(commits, loc))
	},
}

func init() {
	addOutputFlags(releasesCmd)
	rootCmd.AddCommand(releasesCmd)
}
