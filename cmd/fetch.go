package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/report"
	"github.com/vgcstats/go-showdown-metrics/internal/showdown"
	"github.com/vgcstats/go-showdown-metrics/internal/storage"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <replay-id-or-url> [more...]",
	Short: "Download replays from the replay server and store them",
	Long: `Downloads the protocol transcript for each replay id or URL from
replay.pokemonshowdown.com and stores the parsed game record.

Example:
  sdmetrics fetch gen9vgc2026regfbo3-871128250
  sdmetrics fetch https://replay.pokemonshowdown.com/gen9vgc2026regfbo3-871128250`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	client := showdown.NewClient()
	for _, id := range args {
		fmt.Fprintf(os.Stdout, "Fetching %s...\n", showdown.LogURL(id))
		text, err := client.FetchReplayLog(cmd.Context(), id)
		if err != nil {
			return err
		}

		stored, cached, err := storeTranscript(db, id, text)
		if err != nil {
			return err
		}
		if cached {
			fmt.Fprintf(os.Stdout, "Replay %s already stored — showing cached record.\n", shortHash(stored.Hash))
		}

		report.PrintGameSummary(os.Stdout, *stored)
		report.PrintSideTable(os.Stdout, "Player 1", stored.Record.Player1)
		report.PrintSideTable(os.Stdout, "Player 2", stored.Record.Player2)
	}
	return nil
}
