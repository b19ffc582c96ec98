package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vgcstats/go-showdown-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintGameSummary prints a one-line header for a parsed replay.
func PrintGameSummary(w io.Writer, r model.StoredReplay) {
	rec := r.Record
	winner := "—"
	switch rec.Winner() {
	case model.WinnerPlayer1:
		winner = orDash(rec.Player1.Username)
	case model.WinnerPlayer2:
		winner = orDash(rec.Player2.Username)
	}
	bo3 := "—"
	if rec.BestOf3ID != nil {
		bo3 = *rec.BestOf3ID
		if rec.BestOf3GameNumber != nil {
			bo3 = fmt.Sprintf("%s (game %d)", bo3, *rec.BestOf3GameNumber)
		}
	}
	fmt.Fprintf(w, "\n%s vs %s  |  Winner: %s  |  Bo3: %s  |  Hash: %s\n\n",
		orDash(rec.Player1.Username), orDash(rec.Player2.Username), winner, bo3, shortHash(r.Hash))
}

// PrintSideTable prints one side's team sheet plus what it actually
// brought: leads, bench, and the terastallized species.
func PrintSideTable(w io.Writer, label string, side model.PlayerSide) {
	fmt.Fprintf(w, "%s — %s\n", label, orDash(side.Username))

	table := newTable(w)
	table.Header("POKEMON", "ITEM", "ABILITY", "MOVES", "TERA TYPE", "BROUGHT")
	for _, m := range side.Team {
		table.Append(
			m.Name,
			orDash(m.Item),
			orDash(m.Ability),
			joinOrDash(m.Moves),
			orDash(m.TeraType),
			broughtMarker(side, m.Name),
		)
	}
	table.Render()

	fmt.Fprintf(w, "Leads: %s  |  Back: %s  |  Terastallized: %s\n\n",
		joinOrDash(side.LeadPokemon), joinOrDash(side.BackPokemon), orDash(side.TeraPokemon))
}

// broughtMarker labels a roster entry with how it was used in this game.
func broughtMarker(side model.PlayerSide, species string) string {
	for _, sp := range side.LeadPokemon {
		if sp == species {
			return "lead"
		}
	}
	for _, sp := range side.BackPokemon {
		if sp == species {
			return "back"
		}
	}
	return ""
}

// PrintReport prints every win-rate slice for one player.
func PrintReport(w io.Writer, player string, rep model.Report) {
	fmt.Fprintf(w, "\nWin rates for %s\n\n", player)

	overall := newTable(w)
	overall.Header("METRIC", "W", "L", "TOTAL", "WINRATE", "UNDECIDED")
	overall.Append(appendRate("Best-of-3 matches", rep.OverallBestOf3.Rate, strconv.Itoa(rep.OverallBestOf3.UndecidedMatches))...)
	overall.Append(appendRate("Individual games", rep.OverallGames, "")...)
	if rep.VsOpponentSet != nil {
		vs := rep.VsOpponentSet
		label := fmt.Sprintf("Bo3 vs %s (%d matching)", joinOrDash(vs.RequiredOpponentPokemon), vs.MatchingBestOf3)
		overall.Append(appendRate(label, vs.Rate, strconv.Itoa(vs.UndecidedMatches))...)
	}
	overall.Render()

	PrintRateTable(w, "By brought Pokemon (per game)", rep.ByBrought)
	PrintRateTable(w, "By lead pair (per game)", rep.ByLeadPair)
	PrintRateTable(w, "By terastallized Pokemon (per game)", rep.ByTera)
}

// PrintRateTable prints one keyed win-rate slice, sorted by key for stable
// output.
func PrintRateTable(w io.Writer, title string, rates map[string]model.Rate) {
	fmt.Fprintf(w, "\n%s\n", title)
	table := newTable(w)
	table.Header("KEY", "W", "L", "TOTAL", "WINRATE")

	keys := make([]string, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		table.Append(appendRate(k, rates[k], "")[:5]...)
	}
	table.Render()
}

func appendRate(label string, r model.Rate, extra string) []any {
	winrate := "—"
	if r.Winrate != nil {
		winrate = fmt.Sprintf("%.1f%%", *r.Winrate*100)
	}
	row := []any{label, strconv.Itoa(r.Wins), strconv.Itoa(r.Losses), strconv.Itoa(r.Total), winrate}
	if extra == "" {
		extra = "—"
	}
	return append(row, extra)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "—"
	}
	out := list[0]
	for _, s := range list[1:] {
		out += ", " + s
	}
	return out
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
