package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/model"
	"github.com/vgcstats/go-showdown-metrics/internal/report"
	"github.com/vgcstats/go-showdown-metrics/internal/storage"
	"github.com/vgcstats/go-showdown-metrics/internal/winrate"
)

var (
	winratesPlayer    string
	winratesOpponents []string
	winratesFromJSON  string
	winratesOut       string
)

// winratesAnalysis is the JSON report envelope.
type winratesAnalysis struct {
	Player    string       `json:"player"`
	GamesUsed int          `json:"games_used"`
	Metrics   model.Report `json:"metrics"`
}

var winratesCmd = &cobra.Command{
	Use:   "winrates",
	Short: "Compute win-rate slices for a player",
	Long: `Computes overall, best-of-3, per-brought-species, per-lead-pair and
per-tera win rates for the given player across stored replays.

Use --opponent (repeatable) to additionally compute the best-of-3 win rate
restricted to matches where the opponent brought all the named species.
Use --from-json to read <name>_parsed.json files instead of the database.`,
	Args: cobra.NoArgs,
	RunE: runWinrates,
}

func init() {
	winratesCmd.Flags().StringVar(&winratesPlayer, "player", "", "username to analyze (required)")
	winratesCmd.Flags().StringArrayVar(&winratesOpponents, "opponent", nil, "required opponent species for the conditional Bo3 slice")
	winratesCmd.Flags().StringVar(&winratesFromJSON, "from-json", "", "glob of parsed-record JSON files to load instead of the database")
	winratesCmd.Flags().StringVarP(&winratesOut, "output", "o", "", "write the analysis JSON to this path")
	winratesCmd.MarkFlagRequired("player")
}

func runWinrates(cmd *cobra.Command, args []string) error {
	var (
		games []model.GameResult
		err   error
	)
	if winratesFromJSON != "" {
		games, err = loadGamesFromJSON(winratesFromJSON, winratesPlayer)
	} else {
		games, err = loadGamesFromStore(winratesPlayer)
	}
	if err != nil {
		return err
	}

	log.Info().Str("player", winratesPlayer).Int("games", len(games)).Msg("computing win rates")
	rep := winrate.BuildReport(games, winratesOpponents)

	if winratesOut != "" {
		analysis := winratesAnalysis{Player: winratesPlayer, GamesUsed: len(games), Metrics: rep}
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("encode analysis: %w", err)
		}
		if err := os.WriteFile(winratesOut, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write analysis: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Wrote winrate analysis to %s\n", winratesOut)
		return nil
	}

	report.PrintReport(os.Stdout, winratesPlayer, rep)
	return nil
}

func loadGamesFromStore(player string) ([]model.GameResult, error) {
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.LoadGameResults(player)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	return games, nil
}

// loadGamesFromJSON reads emitted-record JSON files matching the glob and
// resolves each onto the target player. Files where the player matches
// neither side are skipped.
func loadGamesFromJSON(glob, player string) ([]model.GameResult, error) {
	paths, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("bad glob %q: %w", glob, err)
	}
	sort.Strings(paths)

	var games []model.GameResult
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var rec model.GameRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if res := rec.ResultFor(path, player); res != nil {
			games = append(games, *res)
		}
	}
	return games, nil
}
