package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/storage"
	"github.com/vgcstats/go-showdown-metrics/internal/winrate"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored replays and win rates over HTTP",
	Long: `Starts a read-only JSON API over the replay database:

  GET /api/replays                      list stored replays
  GET /api/replays/{prefix}             one game record by hash prefix
  GET /api/winrates/{player}            win-rate report for a player
      ?opponent=Pikachu,Snorlax         optional conditional Bo3 slice`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from SDM_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	addr := serveAddr
	if addr == "" {
		addr = appCfg.ServeAddr
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/replays", handleListReplays(db))
		r.Get("/replays/{prefix}", handleGetReplay(db))
		r.Get("/winrates/{player}", handleWinrates(db))
	})

	log.Info().Str("addr", addr).Str("db", dbPath).Msg("serving replay API")
	return http.ListenAndServe(addr, r)
}

// requestLogger logs one line per request with route, status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		log.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimw.GetReqID(req.Context())).
			Msg("request")
	})
}

func handleListReplays(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		replays, err := db.ListReplays()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, replays)
	}
}

func handleGetReplay(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		stored, err := db.GetReplayByPrefix(chi.URLParam(req, "prefix"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if stored == nil {
			writeError(w, http.StatusNotFound, fmt.Errorf("no replay with that prefix"))
			return
		}
		writeJSON(w, http.StatusOK, stored.Record)
	}
}

func handleWinrates(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		player := chi.URLParam(req, "player")

		var opponents []string
		if raw := req.URL.Query().Get("opponent"); raw != "" {
			for _, name := range strings.Split(raw, ",") {
				if name = strings.TrimSpace(name); name != "" {
					opponents = append(opponents, name)
				}
			}
		}

		games, err := db.LoadGameResults(player)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		rep := winrate.BuildReport(games, opponents)
		writeJSON(w, http.StatusOK, winratesAnalysis{
			Player:    player,
			GamesUsed: len(games),
			Metrics:   rep,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
