// Package winrate groups per-game results into best-of-3 matches and
// computes conditional win-rate slices. Everything here is a pure function
// over an in-memory slice of results; each record contributes to each
// bucket independently.
package winrate

import (
	"math"
	"sort"
	"strings"

	"github.com/vgcstats/go-showdown-metrics/internal/model"
)

// NoTeraBucket labels games where the player never terastallized.
const NoTeraBucket = "No Terastallization"

// NewRate builds a Rate from a win count and trial count. A zero total
// leaves the winrate undefined rather than dividing by zero.
func NewRate(wins, total int) model.Rate {
	r := model.Rate{Wins: wins, Losses: total - wins, Total: total}
	if total > 0 {
		v := math.Round(float64(wins)/float64(total)*10000) / 10000
		r.Winrate = &v
	}
	return r
}

// OverallGameRate is the fraction of individual games won.
func OverallGameRate(games []model.GameResult) model.Rate {
	wins := 0
	for _, g := range games {
		if g.DidWin {
			wins++
		}
	}
	return NewRate(wins, len(games))
}

// groupBestOf3 buckets games by match identifier. Games without one take
// part in no group and are excluded from every best-of-3 statistic.
func groupBestOf3(games []model.GameResult) map[string][]model.GameResult {
	grouped := make(map[string][]model.GameResult)
	for _, g := range games {
		if g.BestOf3ID == nil || *g.BestOf3ID == "" {
			continue
		}
		grouped[*g.BestOf3ID] = append(grouped[*g.BestOf3ID], g)
	}
	return grouped
}

// matchOutcome resolves one match group: win on a strict majority of game
// wins, loss on a strict minority, nil on an exact tie (an abandoned 1-1
// best-of-3 that never reached the decider).
func matchOutcome(group []model.GameResult) *bool {
	wins := 0
	for _, g := range group {
		if g.DidWin {
			wins++
		}
	}
	losses := len(group) - wins
	switch {
	case wins > losses:
		v := true
		return &v
	case losses > wins:
		v := false
		return &v
	default:
		return nil
	}
}

// resolveMatches tallies decided matches; tied groups count as undecided
// and stay out of the denominator.
func resolveMatches(groups map[string][]model.GameResult) (wins, decided, undecided int) {
	for _, group := range groups {
		outcome := matchOutcome(group)
		if outcome == nil {
			undecided++
			continue
		}
		decided++
		if *outcome {
			wins++
		}
	}
	return wins, decided, undecided
}

// OverallBestOf3Rate is the match-level win rate across all grouped games.
func OverallBestOf3Rate(games []model.GameResult) model.MatchRate {
	wins, decided, undecided := resolveMatches(groupBestOf3(games))
	return model.MatchRate{Rate: NewRate(wins, decided), UndecidedMatches: undecided}
}

// BestOf3RateVsOpponents restricts the match-level win rate to matches
// where at least one game's opponent roster contains every required
// species. Species matching is case-insensitive.
func BestOf3RateVsOpponents(games []model.GameResult, requiredOpponents []string) model.OpponentFilteredRate {
	required := make(map[string]struct{}, len(requiredOpponents))
	for _, name := range requiredOpponents {
		required[strings.ToLower(name)] = struct{}{}
	}

	qualifying := make(map[string][]model.GameResult)
	for id, group := range groupBestOf3(games) {
		for _, g := range group {
			if hasAll(g.OpponentTeam, required) {
				qualifying[id] = group
				break
			}
		}
	}

	wins, decided, undecided := resolveMatches(qualifying)
	return model.OpponentFilteredRate{
		Rate:                    NewRate(wins, decided),
		RequiredOpponentPokemon: requiredOpponents,
		MatchingBestOf3:         len(qualifying),
		UndecidedMatches:        undecided,
	}
}

// hasAll reports whether team (compared case-insensitively) is a superset
// of the required species set.
func hasAll(team []string, required map[string]struct{}) bool {
	present := make(map[string]struct{}, len(team))
	for _, name := range team {
		present[strings.ToLower(name)] = struct{}{}
	}
	for name := range required {
		if _, ok := present[name]; !ok {
			return false
		}
	}
	return true
}

// RateByBroughtPokemon tallies one trial per game for every species in the
// game's lead+bench set. A single game contributes to several species'
// buckets at once.
func RateByBroughtPokemon(games []model.GameResult) map[string]model.Rate {
	type tally struct{ wins, total int }
	counts := make(map[string]*tally)
	for _, g := range games {
		brought := make(map[string]struct{}, len(g.SelfLeads)+len(g.SelfBack))
		for _, sp := range g.SelfLeads {
			brought[sp] = struct{}{}
		}
		for _, sp := range g.SelfBack {
			brought[sp] = struct{}{}
		}
		for sp := range brought {
			c := counts[sp]
			if c == nil {
				c = &tally{}
				counts[sp] = c
			}
			c.total++
			if g.DidWin {
				c.wins++
			}
		}
	}

	out := make(map[string]model.Rate, len(counts))
	for sp, c := range counts {
		out[sp] = NewRate(c.wins, c.total)
	}
	return out
}

// RateByLeadPair groups games by their sorted "+"-joined lead pair. Games
// with no recorded leads are excluded.
func RateByLeadPair(games []model.GameResult) map[string]model.Rate {
	type tally struct{ wins, total int }
	counts := make(map[string]*tally)
	for _, g := range games {
		if len(g.SelfLeads) == 0 {
			continue
		}
		leads := append([]string(nil), g.SelfLeads...)
		sort.Strings(leads)
		key := strings.Join(leads, " + ")
		c := counts[key]
		if c == nil {
			c = &tally{}
			counts[key] = c
		}
		c.total++
		if g.DidWin {
			c.wins++
		}
	}

	out := make(map[string]model.Rate, len(counts))
	for key, c := range counts {
		out[key] = NewRate(c.wins, c.total)
	}
	return out
}

// RateByTeraPokemon groups games by the terastallized species, bucketing
// games without one under NoTeraBucket.
func RateByTeraPokemon(games []model.GameResult) map[string]model.Rate {
	type tally struct{ wins, total int }
	counts := make(map[string]*tally)
	for _, g := range games {
		key := NoTeraBucket
		if g.SelfTera != nil && *g.SelfTera != "" {
			key = *g.SelfTera
		}
		c := counts[key]
		if c == nil {
			c = &tally{}
			counts[key] = c
		}
		c.total++
		if g.DidWin {
			c.wins++
		}
	}

	out := make(map[string]model.Rate, len(counts))
	for key, c := range counts {
		out[key] = NewRate(c.wins, c.total)
	}
	return out
}

// BuildReport assembles every slice into one report. The conditional
// opponent-set slice is included only when species were requested.
func BuildReport(games []model.GameResult, requiredOpponents []string) model.Report {
	rep := model.Report{
		OverallBestOf3: OverallBestOf3Rate(games),
		OverallGames:   OverallGameRate(games),
		ByBrought:      RateByBroughtPokemon(games),
		ByLeadPair:     RateByLeadPair(games),
		ByTera:         RateByTeraPokemon(games),
	}
	if len(requiredOpponents) > 0 {
		vs := BestOf3RateVsOpponents(games, requiredOpponents)
		rep.VsOpponentSet = &vs
	}
	return rep
}
