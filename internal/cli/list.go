package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algoviz/practice/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List solved items",
		Run:   runList,
	}

	cmd.Flags().String("category", "", "Filter by catalog category")
	cmd.Flags().String("difficulty", "", "Filter by difficulty")
	cmd.Flags().Bool("ids-only", false, "Only output item ids")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	diffStr, _ := cmd.Flags().GetString("difficulty")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	var difficulty model.Difficulty
	if diffStr != "" {
		d, err := model.ParseDifficulty(diffStr)
		if err != nil {
			exitErr("list", err)
		}
		difficulty = d
	}

	cat := loadCatalog()
	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	var views []itemView
	for _, v := range newItemViews(sched.GetSolvedItems(), cat) {
		if category != "" && v.Category != category {
			continue
		}
		if difficulty != "" && v.Difficulty != difficulty {
			continue
		}
		views = append(views, v)
	}

	if idsOnly {
		for _, v := range views {
			fmt.Fprintln(cmd.OutOrStdout(), v.ItemID)
		}
		return
	}
	if textFormat() {
		printItemsText(cmd.OutOrStdout(), views)
		return
	}
	if views == nil {
		views = []itemView{}
	}
	printJSON(cmd, views)
}
