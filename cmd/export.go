package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored game records as JSON files",
	Long: `Writes one <hash>_parsed.json per stored replay into the output
directory, in the same emitted-record shape produced by 'parse --json-dir'.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	replays, err := db.LoadAllReplays()
	if err != nil {
		return fmt.Errorf("load replays: %w", err)
	}
	if len(replays) == 0 {
		fmt.Fprintln(os.Stdout, "No replays stored, nothing to export.")
		return nil
	}

	if err := os.MkdirAll(exportOut, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, r := range replays {
		data, err := json.MarshalIndent(r.Record, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.Hash, err)
		}
		path := filepath.Join(exportOut, shortHash(r.Hash)+"_parsed.json")
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	fmt.Fprintf(os.Stdout, "Exported %d record(s) to %s\n", len(replays), exportOut)
	return nil
}
