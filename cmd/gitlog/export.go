package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/audi70r/gitlog/internal/store"
)

var (
	exportDB   string
	exportList bool
	exportShow string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save parsed commits to a SQLite database",
	Long: `Parse the history and store every record under a new run id. Each run
keeps the origin it was parsed with, so several repositories or several
points in time can share one database.

With --list, print the stored runs instead. With --show, print the records
of one stored run in the chosen --format.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(exportDB, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		if exportShow != "" {
			if _, err := s.LoadRun(cmd.Context(), exportShow); err != nil {
				return err
			}
			commits, err := s.LoadCommits(cmd.Context(), exportShow)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), cfg.Format, commits)
		}

		if exportList {
			runs, err := s.Runs(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tCREATED\tCOMMITS\tORIGIN")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Format(time.DateTime), r.Commits, r.Origin.URL)
			}
			return tw.Flush()
		}

		commits, origin, err := loadHistory(cmd.Context())
		if err != nil {
			return err
		}
		runID, err := s.SaveRun(cmd.Context(), origin, commits)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), runID)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "gitlog.db", "SQLite database path")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "list stored runs")
	exportCmd.Flags().StringVar(&exportShow, "show", "", "print the records of a stored run")
	exportCmd.MarkFlagsMutuallyExclusive("list", "show")
	addOutputFlags(exportCmd)
	rootCmd.AddCommand(exportCmd)
}
