// Package replay reconstructs a structured game record from a Showdown
// battle transcript. One Tracker instance performs a single in-order pass
// over the protocol lines; ordering matters because later events (a
// terastallize) resolve state written by earlier ones (nickname bindings
// from switches), so a transcript is never processed out of order or twice
// by the same tracker.
package replay

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vgcstats/go-showdown-metrics/internal/model"
	"github.com/vgcstats/go-showdown-metrics/internal/protocol"
	"github.com/vgcstats/go-showdown-metrics/internal/teamsheet"
)

// maxLeads is how many species a side sends out at the start of a game;
// everything revealed after that is bench.
const maxLeads = 2

var (
	// "Game 2" token inside the bestof uhtml block.
	gameNumberRe = regexp.MustCompile(`Game (\d+)`)
	// Best-of-3 identifier embedded in the block's links, e.g.
	// "gen9vgc2026regfbo3-871128250".
	bestOf3IDRe = regexp.MustCompile(`[a-z0-9]+bo3-\d+`)
)

// Tracker folds a decoded event stream into one GameRecord. The
// nickname→species table it maintains is scoped to the tracker and
// discarded with it; only the record escapes.
type Tracker struct {
	record    model.GameRecord
	nicknames map[protocol.Side]map[string]string
}

// NewTracker returns a tracker ready to consume one transcript.
func NewTracker() *Tracker {
	return &Tracker{
		record: model.GameRecord{
			Player1: emptySide(),
			Player2: emptySide(),
		},
		nicknames: map[protocol.Side]map[string]string{
			protocol.Side1: {},
			protocol.Side2: {},
		},
	}
}

func emptySide() model.PlayerSide {
	return model.PlayerSide{
		Team:        []model.TeamMember{},
		LeadPokemon: []string{},
		BackPokemon: []string{},
	}
}

// Parse runs a tracker over an entire transcript and returns the finished
// record. Malformed or truncated transcripts yield a record with fewer
// populated fields, never an error.
func Parse(text string) *model.GameRecord {
	t := NewTracker()
	for _, line := range strings.Split(text, "\n") {
		t.Feed(line)
	}
	return t.Record()
}

// Feed consumes one raw transcript line. Lines that are not protocol, use
// an unrecognized tag, or are too short for their tag are dropped silently.
func (t *Tracker) Feed(line string) {
	ev, ok := protocol.DecodeLine(line)
	if !ok {
		return
	}

	switch ev.Tag {
	case "player":
		t.handlePlayer(ev)
	case "uhtml":
		t.handleUhtml(ev)
	case "showteam":
		t.handleShowteam(ev)
	case "switch":
		t.handleAppearance(ev, true)
	case "detailschange":
		t.handleAppearance(ev, false)
	case "-terastallize":
		t.handleTerastallize(ev)
	case "win":
		t.handleWin(ev)
	}
}

// Record finalizes and returns the accumulated game record.
func (t *Tracker) Record() *model.GameRecord {
	rec := t.record
	return &rec
}

func (t *Tracker) side(s protocol.Side) *model.PlayerSide {
	switch s {
	case protocol.Side1:
		return &t.record.Player1
	case protocol.Side2:
		return &t.record.Player2
	default:
		return nil
	}
}

// handlePlayer binds a side slot to a username. An empty username never
// overwrites an earlier binding.
func (t *Tracker) handlePlayer(ev protocol.Event) {
	if len(ev.Args) < 3 {
		return
	}
	side := t.side(protocol.SideFromName(ev.Args[0]))
	username := strings.TrimSpace(ev.Args[1])
	if side == nil || username == "" {
		return
	}
	side.Username = &username
}

// handleUhtml scans the "bestof" block for the game number and the
// best-of-3 match identifier. Either may be absent.
func (t *Tracker) handleUhtml(ev protocol.Event) {
	if len(ev.Args) < 2 || strings.TrimSpace(ev.Args[0]) != "bestof" {
		return
	}
	payload := ev.Payload(1)

	if m := gameNumberRe.FindStringSubmatch(payload); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			t.record.BestOf3GameNumber = &n
		}
	}
	if id := bestOf3IDRe.FindString(payload); id != "" {
		t.record.BestOf3ID = &id
	}
}

// handleShowteam decodes the team export and assigns it to the named side,
// replacing any earlier roster for that side.
func (t *Tracker) handleShowteam(ev protocol.Event) {
	if len(ev.Args) < 2 {
		return
	}
	side := t.side(protocol.SideFromName(ev.Args[0]))
	if side == nil {
		return
	}
	if team := teamsheet.Decode(ev.Payload(1)); team != nil {
		side.Team = team
	} else {
		side.Team = []model.TeamMember{}
	}
}

// handleAppearance processes switch and detailschange events. Both update
// the nickname binding; only a switch counts as an appearance for lead and
// bench classification — a form change is not a new appearance.
func (t *Tracker) handleAppearance(ev protocol.Event, classify bool) {
	if len(ev.Args) < 2 {
		return
	}
	sideID, nickname, hasNick := protocol.ParseSlot(ev.Args[0])
	side := t.side(sideID)
	if side == nil {
		return
	}
	species := protocol.SpeciesFromDetails(ev.Args[1])

	if hasNick {
		t.nicknames[sideID][nickname] = species
	}
	if classify {
		t.classifyAppearance(side, species)
	}
}

// classifyAppearance applies first-seen lead/bench classification: the
// first two distinct species to enter play are leads, every later distinct
// species is bench. Repeat appearances add nothing.
func (t *Tracker) classifyAppearance(side *model.PlayerSide, species string) {
	if species == "" || contains(side.LeadPokemon, species) {
		return
	}
	if len(side.LeadPokemon) < maxLeads {
		side.LeadPokemon = append(side.LeadPokemon, species)
		return
	}
	if !contains(side.BackPokemon, species) {
		side.BackPokemon = append(side.BackPokemon, species)
	}
}

// handleTerastallize resolves the slot's nickname through the current
// binding table and records the species, overwriting any prior value. An
// unbound nickname falls back to the raw nickname string.
func (t *Tracker) handleTerastallize(ev protocol.Event) {
	if len(ev.Args) < 1 {
		return
	}
	sideID, nickname, hasNick := protocol.ParseSlot(ev.Args[0])
	side := t.side(sideID)
	if side == nil || !hasNick {
		return
	}
	species, ok := t.nicknames[sideID][nickname]
	if !ok {
		species = nickname
	}
	if species == "" {
		return
	}
	side.TeraPokemon = &species
}

// handleWin attributes the victory by exact username match; a name that
// matches neither bound username leaves the winner undefined.
func (t *Tracker) handleWin(ev protocol.Event) {
	if len(ev.Args) < 1 {
		return
	}
	name := strings.TrimSpace(ev.Args[0])
	switch {
	case t.record.Player1.Username != nil && name == *t.record.Player1.Username:
		w := 1
		t.record.WinningPlayer = &w
	case t.record.Player2.Username != nil && name == *t.record.Player2.Username:
		w := 2
		t.record.WinningPlayer = &w
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
