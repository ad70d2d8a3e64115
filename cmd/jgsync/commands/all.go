package commands

import (
	"fmt"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/serviceutil"

	"github.com/spf13/cobra"
)

var listTasks bool

func init() {
	allCmd.Flags().BoolVar(&listTasks, "list", false, "List the registered tasks and exit.")
	rootCmd.AddCommand(allCmd)
}

var allCmd = &cobra.Command{
	Use:   "all [--list] [task...]",
	Short: "Runs the given sync tasks (all of them by default) in dependency order.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		if listTasks {
			for _, name := range g.Tasks.Names() {
				fmt.Println(name)
			}
			return
		}

		plan, err := g.Tasks.Plan(args...)
		if err != nil {
			serviceutil.Fatal("failed to plan tasks", err)
		}
		mustRequire(g, plan...)

		err = g.Tasks.Run(cmd.Context(), plan...)
		if err != nil {
			serviceutil.Fatal("sync failed", err)
		}
	},
}
