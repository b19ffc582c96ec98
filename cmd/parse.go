package cmd

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/model"
	"github.com/vgcstats/go-showdown-metrics/internal/replay"
	"github.com/vgcstats/go-showdown-metrics/internal/report"
	"github.com/vgcstats/go-showdown-metrics/internal/storage"
)

var parseJSONDir string

var parseCmd = &cobra.Command{
	Use:   "parse <replay.log> [more...]",
	Short: "Parse replay transcripts and store game records",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseJSONDir, "json-dir", "", "also write one <name>_parsed.json per replay into this directory")
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	for _, path := range args {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}

		stored, cached, err := storeTranscript(db, filepath.Base(path), string(text))
		if err != nil {
			return err
		}
		if cached {
			fmt.Fprintf(os.Stdout, "Replay %s already stored — showing cached record.\n", shortHash(stored.Hash))
		}
		if parseJSONDir != "" {
			if err := writeRecordJSON(parseJSONDir, path, stored.Record); err != nil {
				return err
			}
		}

		report.PrintGameSummary(os.Stdout, *stored)
		report.PrintSideTable(os.Stdout, "Player 1", stored.Record.Player1)
		report.PrintSideTable(os.Stdout, "Player 2", stored.Record.Player2)
	}
	return nil
}

// storeTranscript parses one transcript and stores the record, keyed by the
// sha256 of the raw text so re-parsing the same replay is a no-op. Returns
// the stored replay and whether it came from the cache.
func storeTranscript(db *storage.DB, source, text string) (*model.StoredReplay, bool, error) {
	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(text)))

	exists, err := db.ReplayExists(hash)
	if err != nil {
		return nil, false, fmt.Errorf("check replay: %w", err)
	}
	if exists {
		stored, err := db.GetReplayByPrefix(hash)
		if err != nil {
			return nil, false, fmt.Errorf("load cached replay: %w", err)
		}
		return stored, true, nil
	}

	rec := replay.Parse(text)
	stored := model.StoredReplay{
		Hash:       hash,
		Source:     source,
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
		Record:     rec,
	}
	if err := db.InsertReplay(stored); err != nil {
		return nil, false, fmt.Errorf("insert replay: %w", err)
	}

	log.Info().Str("source", source).Str("hash", shortHash(hash)).Msg("stored replay")
	return &stored, false, nil
}

// writeRecordJSON writes the emitted-record JSON next to the original
// transcript name, using the <name>_parsed.json convention.
func writeRecordJSON(dir, transcriptPath string, rec *model.GameRecord) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create json dir: %w", err)
	}
	base := filepath.Base(transcriptPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	out := filepath.Join(dir, base+"_parsed.json")

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
