package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/algoviz/practice/internal/progress"
	"github.com/algoviz/practice/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "revisions",
		Short: "List saved revisions of the progress state",
		Long: "List saved revisions of the progress state. With --restore, replace the current progress " +
			"with a retained version; the restore is saved as a new revision.",
		Run: runRevisions,
	}

	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = all retained)")
	cmd.Flags().Int("restore", 0, "Restore this version")

	RootCmd.AddCommand(cmd)
}

func runRevisions(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	if cmd.Flags().Changed("restore") {
		version, _ := cmd.Flags().GetInt("restore")
		restoreRevision(cmd, version)
		return
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	revs, err := s.Revisions(cmd.Context(), limit)
	if err != nil {
		exitErr("revisions", err)
	}

	if !textFormat() {
		if revs == nil {
			revs = []store.Revision{}
		}
		printJSON(cmd, revs)
		return
	}
	for _, r := range revs {
		fmt.Fprintf(cmd.OutOrStdout(), "v%-4d %s  %-9s %s\n",
			r.Version, r.ID, humanize.Bytes(uint64(r.SizeBytes)), humanize.Time(r.CreatedAt))
	}
}

func restoreRevision(cmd *cobra.Command, version int) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	data, err := s.RevisionData(cmd.Context(), version)
	if err != nil {
		exitErr("restore", err)
	}

	sched := progress.New(cmd.Context(), s,
		progress.WithLogger(logger),
		progress.WithLocation(cfg.Location),
	)
	if err := sched.Import(cmd.Context(), data); err != nil {
		exitErr("restore", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"restored":%d,"items":%d}`+"\n", version, len(sched.GetSolvedItems()))
}
