package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/storage"
)

var dropForce bool

// dropCmd deletes stored replays, or the whole database when no prefix is given.
var dropCmd = &cobra.Command{
	Use:   "drop [hash-prefix]",
	Short: "Delete stored replays",
	Long: `With a hash prefix, deletes the matching replays. Without one,
permanently deletes the whole SQLite replay database. Re-parse or re-fetch
your replays afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		n, err := db.DeleteReplayByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("delete replays: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Deleted %d replay(s) matching %q\n", n, args[0])
		return nil
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
