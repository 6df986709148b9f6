package main

import (
	"github.com/spf13/cobra"

	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/util"
)

var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Print parsed commit records",
	Long: `Print one record per commit, newest first.

Fields that a commit does not have (tag, stats, fixes, merge) are left out.
--limit caps the number of records; "false" prints all of them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commits, _, err := loadHistory(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Format, applyLimit(commits, cfg.Limit))
	},
}

// applyLimit keeps the first n commits for a numeric limit. Negative and
// "false" limits keep everything.
func applyLimit(commits []*git.Commit, limit string) []*git.Commit {
	n, limited := util.ParseLimit(limit)
	if limited && n >= 0 && n < len(commits) {
		return commits[:n]
	}
	return commits
}

func init() {
	addOutputFlags(commitsCmd)
	commitsCmd.Flags().StringP("limit", "n", "false", `maximum number of commits, or "false" for all`)
	rootCmd.AddCommand(commitsCmd)
}
