package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List items due for review, most overdue first",
		Run:   runDue,
	}

	RootCmd.AddCommand(cmd)
}

func runDue(cmd *cobra.Command, args []string) {
	cat := loadCatalog()
	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	views := newItemViews(sched.GetDueForReview(), cat)
	if textFormat() {
		printItemsText(cmd.OutOrStdout(), views)
		return
	}
	printJSON(cmd, views)
}
