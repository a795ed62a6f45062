package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rtalgs/rtalgs/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List runs recorded with --record",
	Long:  `List every simulation run persisted to the history ledger by a prior rtalgs invocation run with --record.`,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(flagHistoryPath)
	if err != nil {
		return fmt.Errorf("open history ledger: %w", err)
	}
	defer store.Close()

	records, err := store.ListRuns()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded yet. Re-run rtalgs with --record to populate the ledger.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPOLICY\tSWITCHES\tVERDICT\tCREATED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Title, r.Policy, r.ContextSwitches, r.Verdict, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
