package cli

import (
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the current daily streak",
		Run:   runStreak,
	}

	RootCmd.AddCommand(cmd)
}

func runStreak(cmd *cobra.Command, args []string) {
	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	streak := sched.GetStreak()
	last := sched.State().LastActivityDate

	if textFormat() {
		if streak == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no active streak")
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s in a row (last active %s)\n", english.Plural(streak, "day", "days"), last)
		return
	}
	printJSON(cmd, map[string]any{
		"streak":             streak,
		"last_activity_date": last,
	})
}
