package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/report"
	"github.com/vgcstats/go-showdown-metrics/internal/storage"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored game record by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the raw record JSON instead of tables")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	stored, err := db.GetReplayByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query replay: %w", err)
	}
	if stored == nil {
		fmt.Fprintf(os.Stderr, "No replay found with hash prefix %q\n", prefix)
		return nil
	}

	if showJSON {
		data, err := json.MarshalIndent(stored.Record, "", "  ")
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	report.PrintGameSummary(os.Stdout, *stored)
	report.PrintSideTable(os.Stdout, "Player 1", stored.Record.Player1)
	report.PrintSideTable(os.Stdout, "Player 2", stored.Record.Player2)
	return nil
}
