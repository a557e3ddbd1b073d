package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/algoviz/practice/internal/model"
	"github.com/algoviz/practice/internal/progress"
	"github.com/algoviz/practice/internal/schedule"
)

func init() {
	cmd := &cobra.Command{
		Use:   "solve <item>",
		Short: "Record a solve and schedule the next review",
		Long: "Record that an item was solved. Confidence (1-5) sets how far out the next review is; " +
			"1 means review again tomorrow.",
		Args: cobra.ExactArgs(1),
		Run:  runSolve,
	}

	cmd.Flags().IntP("confidence", "c", 0, "Confidence 1-5 (required)")
	cmd.Flags().StringP("difficulty", "d", "", "Difficulty: Easy, Medium, Hard (default: catalog or previous value)")
	cmd.Flags().IntP("time", "t", 0, "Time spent in seconds")

	cmd.MarkFlagRequired("confidence")

	RootCmd.AddCommand(cmd)
}

func runSolve(cmd *cobra.Command, args []string) {
	itemID := args[0]
	confidence, _ := cmd.Flags().GetInt("confidence")
	diffStr, _ := cmd.Flags().GetString("difficulty")

	if !schedule.ValidConfidence(confidence) {
		exitErr("solve", fmt.Errorf("confidence must be %d-%d, got %d", schedule.MinConfidence, schedule.MaxConfidence, confidence))
	}

	params := progress.SolveParams{ItemID: itemID, Confidence: confidence}
	if cmd.Flags().Changed("time") {
		secs, _ := cmd.Flags().GetInt("time")
		if secs < 0 {
			exitErr("solve", fmt.Errorf("time spent must not be negative"))
		}
		params.TimeSpent = &secs
	}

	cat := loadCatalog()
	switch {
	case diffStr != "":
		d, err := model.ParseDifficulty(diffStr)
		if err != nil {
			exitErr("solve", err)
		}
		params.Difficulty = d
	default:
		if it, ok := cat.Lookup(itemID); ok {
			params.Difficulty = it.Difficulty
		}
	}

	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	if params.Difficulty == "" {
		if _, ok := sched.GetProgress(itemID); !ok {
			exitErr("solve", fmt.Errorf("%q is not in the catalog; pass --difficulty", itemID))
		}
	}

	rec := sched.MarkSolved(cmd.Context(), params)
	view := newItemView(rec, cat, time.Now())

	if textFormat() {
		printItemText(cmd.OutOrStdout(), view)
		fmt.Fprintf(cmd.OutOrStdout(), "streak: %d\n", sched.GetStreak())
		return
	}
	printJSON(cmd, view)
}
