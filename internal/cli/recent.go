package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/algoviz/practice/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent solves across all items",
		Run:   runRecent,
	}

	cmd.Flags().IntP("limit", "l", 10, "Max results")

	RootCmd.AddCommand(cmd)
}

func runRecent(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	events := sched.GetRecentActivity(limit)
	if !textFormat() {
		if events == nil {
			events = []model.ActivityEvent{}
		}
		printJSON(cmd, events)
		return
	}
	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no activity yet")
		return
	}
	for _, e := range events {
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-36s %s\n", humanize.Time(e.At), e.ItemID, e.Difficulty)
	}
}
