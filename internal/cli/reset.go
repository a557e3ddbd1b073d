package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all progress and the streak",
		Long:  "Clear all progress and the streak. Earlier revisions stay in the database until pruned.",
		Run:   runReset,
	}

	cmd.Flags().Bool("yes", false, "Confirm the reset")

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("reset", fmt.Errorf("refusing to clear progress without --yes"))
	}

	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	cleared := len(sched.GetSolvedItems())
	sched.ResetAll(cmd.Context())

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"cleared":%d}`+"\n", cleared)
}
