package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored replays",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	replays, err := db.ListReplays()
	if err != nil {
		return fmt.Errorf("list replays: %w", err)
	}
	if len(replays) == 0 {
		fmt.Fprintln(os.Stdout, "No replays stored yet. Run 'sdmetrics parse <replay.log>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-20s  %-20s  %-6s  %-30s  %s\n",
		"HASH", "PLAYER 1", "PLAYER 2", "WINNER", "BO3", "IMPORTED")
	fmt.Fprintf(os.Stdout, "%-14s  %-20s  %-20s  %-6s  %-30s  %s\n",
		"──────────────", "────────────────────", "────────────────────", "──────", "──────────────────────────────", "────────")
	for _, r := range replays {
		winner := "—"
		switch r.Winner {
		case 1:
			winner = "p1"
		case 2:
			winner = "p2"
		}
		bo3 := r.BestOf3ID
		if bo3 == "" {
			bo3 = "—"
		} else if r.GameNumber != 0 {
			bo3 = fmt.Sprintf("%s g%d", bo3, r.GameNumber)
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-20s  %-20s  %-6s  %-30s  %s\n",
			shortHash(r.Hash), orEmptyDash(r.Player1), orEmptyDash(r.Player2), winner, bo3, r.ImportedAt)
	}
	return nil
}

func orEmptyDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
