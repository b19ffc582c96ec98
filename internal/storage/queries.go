package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vgcstats/go-showdown-metrics/internal/model"
)

// ReplayExists returns true if a replay with the given hash is already stored.
func (db *DB) ReplayExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM replays WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertReplay stores a parsed replay. Uses INSERT OR REPLACE so re-parsing
// the same transcript is idempotent.
func (db *DB) InsertReplay(r model.StoredReplay) error {
	recordJSON, err := json.Marshal(r.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO replays(hash, source, imported_at,
			p1_username, p2_username, best_of_3_id, game_number, winning_player, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Hash, r.Source, r.ImportedAt,
		nullStr(r.Record.Player1.Username), nullStr(r.Record.Player2.Username),
		nullStr(r.Record.BestOf3ID), nullInt(r.Record.BestOf3GameNumber),
		nullInt(r.Record.WinningPlayer), string(recordJSON),
	)
	return err
}

// ListReplays returns summaries of all stored replays, newest import first.
func (db *DB) ListReplays() ([]model.ReplaySummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, imported_at, p1_username, p2_username,
		       best_of_3_id, game_number, winning_player
		FROM replays ORDER BY imported_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReplaySummary
	for rows.Next() {
		var s model.ReplaySummary
		var p1, p2, bo3 sql.NullString
		var gameNum, winner sql.NullInt64
		if err := rows.Scan(&s.Hash, &s.Source, &s.ImportedAt, &p1, &p2, &bo3, &gameNum, &winner); err != nil {
			return nil, err
		}
		s.Player1, s.Player2, s.BestOf3ID = p1.String, p2.String, bo3.String
		s.GameNumber, s.Winner = int(gameNum.Int64), int(winner.Int64)
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetReplayByPrefix returns the stored replay whose hash starts with the
// given prefix, or nil if none matches.
func (db *DB) GetReplayByPrefix(prefix string) (*model.StoredReplay, error) {
	row := db.conn.QueryRow(`
		SELECT hash, source, imported_at, record_json
		FROM replays WHERE hash LIKE ? || '%' LIMIT 1`, prefix)

	var r model.StoredReplay
	var recordJSON string
	if err := row.Scan(&r.Hash, &r.Source, &r.ImportedAt, &recordJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var rec model.GameRecord
	if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", r.Hash, err)
	}
	r.Record = &rec
	return &r, nil
}

// DeleteReplayByPrefix removes replays matching the hash prefix and returns
// how many rows were deleted.
func (db *DB) DeleteReplayByPrefix(prefix string) (int, error) {
	res, err := db.conn.Exec(`DELETE FROM replays WHERE hash LIKE ? || '%'`, prefix)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// LoadAllReplays returns every stored replay with its full record, newest
// import first.
func (db *DB) LoadAllReplays() ([]model.StoredReplay, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, imported_at, record_json
		FROM replays ORDER BY imported_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StoredReplay
	for rows.Next() {
		var r model.StoredReplay
		var recordJSON string
		if err := rows.Scan(&r.Hash, &r.Source, &r.ImportedAt, &recordJSON); err != nil {
			return nil, err
		}
		var rec model.GameRecord
		if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", r.Hash, err)
		}
		r.Record = &rec
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadGameResults resolves every stored replay onto the target player's
// perspective. Replays where the player matches neither side are skipped —
// that is exclusion, not an error.
func (db *DB) LoadGameResults(targetPlayer string) ([]model.GameResult, error) {
	replays, err := db.LoadAllReplays()
	if err != nil {
		return nil, err
	}
	var out []model.GameResult
	for _, r := range replays {
		if res := r.Record.ResultFor(r.Source, targetPlayer); res != nil {
			out = append(out, *res)
		}
	}
	return out, nil
}

func nullStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
