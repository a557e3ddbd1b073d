package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/algoviz/practice/internal/catalog"
	"github.com/algoviz/practice/internal/model"
)

// itemView is a progress record joined with its catalog entry.
type itemView struct {
	model.ProblemProgress
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Due      bool   `json:"due"`
}

func newItemView(p model.ProblemProgress, cat *catalog.Catalog, now time.Time) itemView {
	v := itemView{ProblemProgress: p, Due: p.IsDue(now)}
	if it, ok := cat.Lookup(p.ItemID); ok {
		v.Title = it.Title
		v.Category = it.Category
	}
	return v
}

func newItemViews(ps []model.ProblemProgress, cat *catalog.Catalog) []itemView {
	now := time.Now()
	out := make([]itemView, 0, len(ps))
	for _, p := range ps {
		out = append(out, newItemView(p, cat, now))
	}
	return out
}

func textFormat() bool {
	return formatFlag == "text"
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func printItemsText(w io.Writer, views []itemView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "nothing here yet")
		return
	}
	for _, v := range views {
		printItemText(w, v)
	}
}

func printItemText(w io.Writer, v itemView) {
	name := v.ItemID
	if v.Title != "" {
		name = fmt.Sprintf("%s (%s)", v.ItemID, v.Title)
	}
	fmt.Fprintf(w, "%-36s %-6s solved %s, confidence %d, review %s\n",
		name, v.Difficulty,
		english.Plural(v.ReviewCount, "time", "times"),
		v.Confidence,
		reviewWhen(v.ProblemProgress),
	)
}

func reviewWhen(p model.ProblemProgress) string {
	if p.IsDue(time.Now()) {
		return "due now"
	}
	return humanize.Time(p.NextReviewAt)
}
