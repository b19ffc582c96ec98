package model

import "sort"

// Winner identifies which side of a game won.
type Winner int

const (
	WinnerUnknown Winner = 0
	WinnerPlayer1 Winner = 1
	WinnerPlayer2 Winner = 2
)

// ---- Per-transcript record emitted by the replay tracker ----

// TeamMember is one declared roster entry from a team-export payload.
// Item, ability and tera type are nil when the export omits them — an
// absent value is distinct from an empty string everywhere downstream.
type TeamMember struct {
	Name     string   `json:"name"`
	Item     *string  `json:"item"`
	Ability  *string  `json:"ability"`
	Moves    []string `json:"moves"`
	TeraType *string  `json:"tera_type"`
}

// PlayerSide is the finalized state for one side of a game.
//
// LeadPokemon holds the first up to two species sent out, in first-seen
// order; BackPokemon holds every other species that appeared in battle.
// Both are de-duplicated and append-only during the parse.
type PlayerSide struct {
	Username    *string      `json:"username"`
	Team        []TeamMember `json:"team"`
	LeadPokemon []string     `json:"lead_pokemon"`
	BackPokemon []string     `json:"back_pokemon"`
	TeraPokemon *string      `json:"terastalized_pokemon"`
}

// RevealedSpecies returns the sorted union of leads and bench — everything
// the side actually sent into battle, independent of the declared roster.
func (s *PlayerSide) RevealedSpecies() []string {
	seen := make(map[string]struct{}, len(s.LeadPokemon)+len(s.BackPokemon))
	var out []string
	for _, sp := range s.LeadPokemon {
		if _, ok := seen[sp]; !ok {
			seen[sp] = struct{}{}
			out = append(out, sp)
		}
	}
	for _, sp := range s.BackPokemon {
		if _, ok := seen[sp]; !ok {
			seen[sp] = struct{}{}
			out = append(out, sp)
		}
	}
	sort.Strings(out)
	return out
}

// TeamSpecies returns the declared roster names in sheet order.
func (s *PlayerSide) TeamSpecies() []string {
	out := make([]string, 0, len(s.Team))
	for _, m := range s.Team {
		if m.Name != "" {
			out = append(out, m.Name)
		}
	}
	return out
}

// GameRecord is the structured result of parsing one battle transcript.
// A transcript missing data (no win event, no team sheet, …) still yields
// a record — the corresponding fields just stay nil/empty.
type GameRecord struct {
	BestOf3ID         *string    `json:"best_of_3_id"`
	BestOf3GameNumber *int       `json:"best_of_3_game_number"`
	Player1           PlayerSide `json:"player1"`
	Player2           PlayerSide `json:"player2"`
	WinningPlayer     *int       `json:"winning_player"`
}

// Winner returns the typed winner for the record.
func (g *GameRecord) Winner() Winner {
	if g.WinningPlayer == nil {
		return WinnerUnknown
	}
	switch *g.WinningPlayer {
	case 1:
		return WinnerPlayer1
	case 2:
		return WinnerPlayer2
	default:
		return WinnerUnknown
	}
}

// GameResult is a GameRecord flattened onto one target player's
// perspective. Built by ResultFor; records where the target matches
// neither username produce no result at all.
type GameResult struct {
	Source            string
	BestOf3ID         *string
	BestOf3GameNumber *int
	DidWin            bool
	SelfTeam          []string
	OpponentTeam      []string
	SelfLeads         []string
	SelfBack          []string
	SelfTera          *string
}

// ResultFor resolves which side of the record the target player is on and
// returns the game from that player's perspective. Returns nil when the
// target matches neither side's username — the caller excludes such
// records, it is not an error. Matching is exact, like win attribution.
func (g *GameRecord) ResultFor(source, targetPlayer string) *GameResult {
	var self, opp *PlayerSide
	var didWin bool

	switch {
	case g.Player1.Username != nil && *g.Player1.Username == targetPlayer:
		self, opp = &g.Player1, &g.Player2
		didWin = g.Winner() == WinnerPlayer1
	case g.Player2.Username != nil && *g.Player2.Username == targetPlayer:
		self, opp = &g.Player2, &g.Player1
		didWin = g.Winner() == WinnerPlayer2
	default:
		return nil
	}

	return &GameResult{
		Source:            source,
		BestOf3ID:         g.BestOf3ID,
		BestOf3GameNumber: g.BestOf3GameNumber,
		DidWin:            didWin,
		SelfTeam:          self.TeamSpecies(),
		OpponentTeam:      opp.TeamSpecies(),
		SelfLeads:         append([]string(nil), self.LeadPokemon...),
		SelfBack:          append([]string(nil), self.BackPokemon...),
		SelfTera:          self.TeraPokemon,
	}
}

// ---- Aggregated win-rate shapes ----

// Rate is a win/loss tally. Winrate is nil when Total is zero; otherwise
// Wins/Total rounded to four decimals. Wins+Losses == Total always.
type Rate struct {
	Wins    int      `json:"wins"`
	Losses  int      `json:"losses"`
	Total   int      `json:"total"`
	Winrate *float64 `json:"winrate"`
}

// MatchRate is a Rate over resolved best-of-3 matches. Tied groups are
// counted in UndecidedMatches and excluded from the Rate denominator.
type MatchRate struct {
	Rate
	UndecidedMatches int `json:"undecided_matches"`
}

// OpponentFilteredRate is a best-of-3 rate restricted to matches where at
// least one game showed the required opponent species.
type OpponentFilteredRate struct {
	Rate
	RequiredOpponentPokemon []string `json:"required_opponent_pokemon"`
	MatchingBestOf3         int      `json:"matching_best_of_3"`
	UndecidedMatches        int      `json:"undecided_matches"`
}

// Report is the full win-rate analysis for one player.
type Report struct {
	OverallBestOf3 MatchRate             `json:"overall_best_of_3_winrate"`
	OverallGames   Rate                  `json:"overall_individual_game_winrate"`
	ByBrought      map[string]Rate       `json:"individual_game_winrate_by_brought_pokemon"`
	ByLeadPair     map[string]Rate       `json:"individual_game_winrate_by_lead_pair"`
	ByTera         map[string]Rate       `json:"individual_game_winrate_by_terastalized_pokemon"`
	VsOpponentSet  *OpponentFilteredRate `json:"best_of_3_winrate_vs_opponent_pokemon_set,omitempty"`
}

// ---- Storage shapes ----

// StoredReplay is a parsed transcript held in the local cache, keyed by
// the sha256 of the raw transcript text.
type StoredReplay struct {
	Hash       string
	Source     string
	ImportedAt string
	Record     *GameRecord
}

// ReplaySummary is a lightweight row for list output.
type ReplaySummary struct {
	Hash       string
	Source     string
	ImportedAt string
	Player1    string
	Player2    string
	BestOf3ID  string
	GameNumber int
	Winner     int
}
