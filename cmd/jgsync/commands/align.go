package commands

import (
	"context"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/align"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(alignCmd)
}

var alignCmd = &cobra.Command{
	Use:   "align-company-subscriptions",
	Short: "Extends subscriptions of company employees up to the company's own expiration.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		mustRequire(g, "subscriptions", "align-company-subscriptions")
		err := g.Tasks.Run(cmd.Context(), "align-company-subscriptions")
		if err != nil {
			serviceutil.Fatal("failed to align company subscriptions", err)
		}
	},
}

func runAlign(ctx context.Context, g *globals.Value) error {
	database, err := g.Database(ctx)
	if err != nil {
		return err
	}
	job := align.NewJob(db.New(database), newMemberful(g), g.Tel, g.Config.Env.MemberfulMutationsEnabled)
	updated, err := job.Run(ctx)
	if err != nil {
		return err
	}
	g.Tel.ReportCount("align.updated", int64(updated))
	return nil
}
