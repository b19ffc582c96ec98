package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/config"
	"github.com/vgcstats/go-showdown-metrics/internal/logging"
)

var (
	dbPath string
	appCfg config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "sdmetrics",
	Short: "Showdown replay win-rate tool",
	Long:  "Parse Pokemon Showdown replay transcripts and compute team, lead and tera win-rate metrics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(appCfg.Log)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	appCfg, _ = config.Load() // a broken environment falls back to defaults

	defaultDB := appCfg.DBPath
	if defaultDB == "" {
		defaultDB = filepath.Join(mustUserHome(), ".sdmetrics", "replays.db")
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite replay database")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(winratesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
