package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress as JSON",
		Long:  "Export the full progress state in its stored JSON layout. Pipe it into import to restore.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	sched, closeStore := openScheduler(cmd)
	defer closeStore()

	b, err := sched.Export()
	if err != nil {
		exitErr("export", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
