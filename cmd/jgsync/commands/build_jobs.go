package commands

import (
	"context"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/jobs/board"
	"juniorguru-sync/internal/serviceutil"

	"github.com/spf13/cobra"
)

var boardOutput string

func init() {
	buildJobsCmd.Flags().StringVarP(&boardOutput, "output", "o", "", "Where to write the job board, defaults to jobs.board_output.")
	rootCmd.AddCommand(buildJobsCmd)
}

var buildJobsCmd = &cobra.Command{
	Use:   "build-jobs [--output <path>]",
	Short: "Renders approved listings of the jobs worksheet into the job board page.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		mustRequire(g, "build-jobs")

		output := boardOutput
		if output == "" {
			output = g.Config.Jobs.BoardOutput
		}
		err := runBuildJobs(cmd.Context(), g, output)
		if err != nil {
			serviceutil.Fatal("failed to build the job board", err)
		}
	},
}

func runBuildJobs(ctx context.Context, g *globals.Value, output string) error {
	source, err := newSheets(ctx, g)
	if err != nil {
		return err
	}
	n, err := board.NewBuilder(source, g.Tel, g.Config.Sheets.JobsWorksheet).Build(ctx, output)
	if err != nil {
		return err
	}
	g.Tel.ReportCount("build-jobs.listings", int64(n))
	return nil
}
