package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <item>",
		Short: "Show the practice history of one item",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	itemID := args[0]
	cat := loadCatalog()

	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	rec, ok := sched.GetProgress(itemID)
	if !ok {
		exitErr("show", fmt.Errorf("%q has no recorded solves", itemID))
	}
	view := newItemView(rec, cat, time.Now())

	if !textFormat() {
		printJSON(cmd, view)
		return
	}

	w := cmd.OutOrStdout()
	printItemText(w, view)
	if view.TimeSpent != nil {
		fmt.Fprintf(w, "  last time spent: %s\n", time.Duration(*view.TimeSpent)*time.Second)
	}
	for i := len(view.SolvedAt) - 1; i >= 0; i-- {
		at := view.SolvedAt[i]
		fmt.Fprintf(w, "  #%d  %s (%s)\n", i+1, at.In(sched.Location()).Format(time.DateTime), humanize.Time(at))
	}
}
