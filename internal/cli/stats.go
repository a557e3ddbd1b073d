package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/algoviz/practice/internal/model"
	"github.com/algoviz/practice/internal/progress"
	"github.com/algoviz/practice/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice and database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

type statsOutput struct {
	model.Summary
	Categories map[string]model.CategoryCount `json:"categories,omitempty"`
	Database   *store.Stats                   `json:"database"`
}

func runStats(cmd *cobra.Command, args []string) {
	cat := loadCatalog()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sched := progress.New(cmd.Context(), s,
		progress.WithLogger(logger),
		progress.WithLocation(cfg.Location),
	)

	dbStats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	out := statsOutput{Summary: sched.Summary(), Database: dbStats}
	if cat != nil {
		out.Categories = sched.GetCountsByCategory(cat.Categories())
	}

	if !textFormat() {
		printJSON(cmd, out)
		return
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "solved:   %d items, %d reviews\n", out.TotalSolved, out.TotalReviews)
	fmt.Fprintf(w, "due now:  %d\n", out.DueNow)
	fmt.Fprintf(w, "streak:   %s\n", english.Plural(out.Streak, "day", "days"))
	for _, d := range model.Difficulties {
		fmt.Fprintf(w, "  %-8s %d\n", d, out.ByDifficulty[d])
	}
	if cat != nil {
		fmt.Fprintln(w, "categories:")
		for _, name := range cat.CategoryNames() {
			c := out.Categories[name]
			fmt.Fprintf(w, "  %-24s %d/%d\n", name, c.Solved, c.Total)
		}
	}
	fmt.Fprintf(w, "database: %s (%s, %d revisions)\n",
		dbStats.DBPath, humanize.Bytes(uint64(dbStats.DBSizeBytes)), dbStats.Revisions)
}
