package commands

import (
	"context"
	"fmt"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/memberful"
	"juniorguru-sync/internal/serviceutil"
	"juniorguru-sync/internal/sheets"
	"juniorguru-sync/internal/subscriptions"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"
)

var printRecords bool

func init() {
	subscriptionsCmd.Flags().BoolVar(&printRecords, "print", false, "Print the assembled records as a table.")
	rootCmd.AddCommand(subscriptionsCmd)
}

var subscriptionsCmd = &cobra.Command{
	Use:   "subscriptions [--print]",
	Short: "Reconciles Memberful subscriptions with club members and uploads them to Google Sheets.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		mustRequire(g, "subscriptions")
		err := runSubscriptions(cmd.Context(), g, printRecords)
		if err != nil {
			serviceutil.Fatal("failed to sync subscriptions", err)
		}
	},
}

func newSheets(ctx context.Context, g *globals.Value) (*sheets.Client, error) {
	return sheets.NewClient(
		ctx,
		g.Config.Sheets.DocKey,
		g.Tel,
		option.WithCredentialsJSON([]byte(g.Config.Env.GoogleServiceAccount)),
	)
}

func newMemberful(g *globals.Value) *memberful.Client {
	return memberful.NewClient(memberful.ClientOptions{
		GraphqlUrl: g.Config.Memberful.GraphqlUrl,
		ApiKey:     g.Config.Env.MemberfulApiKey,
	}, g.Tel)
}

func runSubscriptions(ctx context.Context, g *globals.Value, print bool) error {
	database, err := g.Database(ctx)
	if err != nil {
		return err
	}
	// the whole run shares one connection
	conn, err := database.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var sink subscriptions.Sink
	if g.Config.Env.GoogleSheetsMutationsEnabled {
		sink, err = newSheets(ctx, g)
		if err != nil {
			return err
		}
	}

	job := subscriptions.NewJob(db.New(conn), newMemberful(g), sink, g.Tel, subscriptions.Options{
		Worksheet:     g.Config.Sheets.SubscriptionsWorksheet,
		UploadEnabled: g.Config.Env.GoogleSheetsMutationsEnabled,
	})
	result, err := job.Run(ctx)
	if err != nil {
		return err
	}
	g.Tel.ReportCount("subscriptions.records", int64(len(result.Records)))
	g.Tel.ReportCount("subscriptions.periods", int64(result.Periods))

	if print {
		printSubscriptions(result)
	}
	return nil
}

func printSubscriptions(result subscriptions.Result) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)

	t.AppendHeader(table.Row{"Name", "Discord Name", "Gender", "Active?", "Coupon Base", "End", "Suggestion"})
	for _, r := range result.Records {
		end := ""
		if !r.MemberfulEnd.IsZero() {
			end = r.MemberfulEnd.Format("2006-01-02")
		}
		t.AppendRow(table.Row{
			r.Name,
			r.DiscordName,
			r.Gender,
			r.MemberfulActive,
			r.CouponBase,
			end,
			r.DiscordNameSuggestion,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Periods", result.Periods})
	t.Render()
}
