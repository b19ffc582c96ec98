package replay

import (
	"reflect"
	"strings"
	"testing"
)

// transcript joins protocol lines into one replay text.
func transcript(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestParse_EndToEnd(t *testing.T) {
	text := transcript(
		"|player|p1|Alice|265|1500",
		"|player|p2|Bob|266|1490",
		"|switch|p1a: Flutter|Flutter Mane, L50|100/100",
		"|switch|p1b: Cat|Incineroar, L50, M|100/100",
		"|switch|p2a: Hands|Iron Hands, L50|100/100",
		"|win|Alice",
	)
	rec := Parse(text)

	if rec.Player1.Username == nil || *rec.Player1.Username != "Alice" {
		t.Fatalf("player1 username: got %v", rec.Player1.Username)
	}
	if rec.Player2.Username == nil || *rec.Player2.Username != "Bob" {
		t.Fatalf("player2 username: got %v", rec.Player2.Username)
	}
	if rec.WinningPlayer == nil || *rec.WinningPlayer != 1 {
		t.Errorf("winning player: got %v, want 1", rec.WinningPlayer)
	}
	if want := []string{"Flutter Mane", "Incineroar"}; !reflect.DeepEqual(rec.Player1.LeadPokemon, want) {
		t.Errorf("p1 leads: got %v, want %v", rec.Player1.LeadPokemon, want)
	}
}

func TestParse_Idempotent(t *testing.T) {
	text := transcript(
		"|player|p1|Alice|265|1500",
		"|player|p2|Bob|266|1490",
		"|switch|p1a: Flutter|Flutter Mane, L50|100/100",
		"|-terastallize|p1a: Flutter|Fairy",
		"|win|Bob",
	)
	first := Parse(text)
	second := Parse(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-parsing the same transcript changed the record:\n first %+v\nsecond %+v", first, second)
	}
}

func TestLeadBenchClassification(t *testing.T) {
	// Appearance order A, B, A, C: A's second appearance adds nothing.
	text := transcript(
		"|switch|p1a: a|Ampharos, L50|100/100",
		"|switch|p1b: b|Blissey, L50|100/100",
		"|switch|p1a: a|Ampharos, L50|80/100",
		"|switch|p1b: c|Corviknight, L50|100/100",
	)
	rec := Parse(text)
	if want := []string{"Ampharos", "Blissey"}; !reflect.DeepEqual(rec.Player1.LeadPokemon, want) {
		t.Errorf("leads: got %v, want %v", rec.Player1.LeadPokemon, want)
	}
	if want := []string{"Corviknight"}; !reflect.DeepEqual(rec.Player1.BackPokemon, want) {
		t.Errorf("bench: got %v, want %v", rec.Player1.BackPokemon, want)
	}
}

func TestDetailschange_DoesNotClassify(t *testing.T) {
	text := transcript(
		"|switch|p1a: Tera|Terapagos, L50|100/100",
		"|detailschange|p1a: Tera|Terapagos-Terastal, L50",
	)
	rec := Parse(text)
	if len(rec.Player1.LeadPokemon) != 1 {
		t.Errorf("a form change must not count as a new appearance: leads %v", rec.Player1.LeadPokemon)
	}
}

func TestTerastallize_ResolvesNickname(t *testing.T) {
	text := transcript(
		"|switch|p1a: Minty|Flutter Mane, L50|100/100",
		"|-terastallize|p1a: Minty|Fairy",
	)
	rec := Parse(text)
	if rec.Player1.TeraPokemon == nil || *rec.Player1.TeraPokemon != "Flutter Mane" {
		t.Errorf("tera: got %v, want bound species Flutter Mane", rec.Player1.TeraPokemon)
	}
}

func TestTerastallize_FormChangeRebindsNickname(t *testing.T) {
	// detailschange rebinds the nickname, so a later terastallize resolves
	// to the changed form.
	text := transcript(
		"|switch|p2a: Ogre|Ogerpon, L50|100/100",
		"|detailschange|p2a: Ogre|Ogerpon-Hearthflame, L50",
		"|-terastallize|p2a: Ogre|Fire",
	)
	rec := Parse(text)
	if rec.Player2.TeraPokemon == nil || *rec.Player2.TeraPokemon != "Ogerpon-Hearthflame" {
		t.Errorf("tera: got %v, want Ogerpon-Hearthflame", rec.Player2.TeraPokemon)
	}
}

func TestTerastallize_UnboundNicknameFallsBack(t *testing.T) {
	rec := Parse("|-terastallize|p1a: Mystery|Steel")
	if rec.Player1.TeraPokemon == nil || *rec.Player1.TeraPokemon != "Mystery" {
		t.Errorf("tera: got %v, want raw nickname fallback", rec.Player1.TeraPokemon)
	}
}

func TestWin_UnknownNameLeavesWinnerUndefined(t *testing.T) {
	text := transcript(
		"|player|p1|Alice|265|1500",
		"|player|p2|Bob|266|1490",
		"|win|Mallory",
	)
	rec := Parse(text)
	if rec.WinningPlayer != nil {
		t.Errorf("winner: got %v, want nil for unknown name", rec.WinningPlayer)
	}
}

func TestWin_MissingEventLeavesWinnerUndefined(t *testing.T) {
	rec := Parse("|player|p1|Alice|265|1500")
	if rec.WinningPlayer != nil {
		t.Errorf("winner: got %v, want nil for truncated transcript", rec.WinningPlayer)
	}
}

func TestPlayer_EmptyUsernameDoesNotOverwrite(t *testing.T) {
	text := transcript(
		"|player|p1|Alice|265|1500",
		"|player|p1| |265",
	)
	rec := Parse(text)
	if rec.Player1.Username == nil || *rec.Player1.Username != "Alice" {
		t.Errorf("username: got %v, want Alice preserved", rec.Player1.Username)
	}
}

func TestShowteam_AssignsRosterToSide(t *testing.T) {
	text := transcript(
		"|showteam|p2|Incineroar||Safety Goggles|Intimidate|Fake Out,Knock Off|||||||,,,,,Grass]Rillaboom||Assault Vest|Grassy Surge|Wood Hammer,U-turn|||||||,,,,,Fire]",
	)
	rec := Parse(text)
	if len(rec.Player2.Team) != 2 {
		t.Fatalf("p2 team: got %d members, want 2", len(rec.Player2.Team))
	}
	if rec.Player2.Team[0].Name != "Incineroar" || rec.Player2.Team[1].Name != "Rillaboom" {
		t.Errorf("team order: got %q, %q", rec.Player2.Team[0].Name, rec.Player2.Team[1].Name)
	}
	if len(rec.Player1.Team) != 0 {
		t.Errorf("p1 team should stay empty, got %v", rec.Player1.Team)
	}
}

func TestUhtml_BestOfMetadata(t *testing.T) {
	text := transcript(
		`|uhtml|bestof|<h2><strong>Game 2</strong> of a best-of-3</h2><a href="/gen9vgc2026regfbo3-871128250">match</a>`,
	)
	rec := Parse(text)
	if rec.BestOf3GameNumber == nil || *rec.BestOf3GameNumber != 2 {
		t.Errorf("game number: got %v, want 2", rec.BestOf3GameNumber)
	}
	if rec.BestOf3ID == nil || *rec.BestOf3ID != "gen9vgc2026regfbo3-871128250" {
		t.Errorf("bo3 id: got %v", rec.BestOf3ID)
	}
}

func TestUhtml_OtherBlocksIgnored(t *testing.T) {
	rec := Parse(`|uhtml|poll|<div>Game 9 of something</div>`)
	if rec.BestOf3GameNumber != nil || rec.BestOf3ID != nil {
		t.Error("non-bestof uhtml blocks must not populate match metadata")
	}
}

func TestFeed_SkipsShortAndUnknownLines(t *testing.T) {
	text := transcript(
		"|player|p1",      // too short for its tag
		"|j|somebody",     // unrecognized tag
		"|turn|1",         // unrecognized tag
		"not protocol",    // no leading separator
		"|win",            // too short
		"|player|p1|Alice|265|1500",
	)
	rec := Parse(text)
	if rec.Player1.Username == nil || *rec.Player1.Username != "Alice" {
		t.Errorf("username: got %v, want Alice", rec.Player1.Username)
	}
}

func TestRevealedSpecies_UnionOfLeadsAndBench(t *testing.T) {
	text := transcript(
		"|switch|p1a: a|Ampharos, L50|100/100",
		"|switch|p1b: b|Blissey, L50|100/100",
		"|switch|p1a: c|Corviknight, L50|100/100",
	)
	rec := Parse(text)
	got := rec.Player1.RevealedSpecies()
	want := []string{"Ampharos", "Blissey", "Corviknight"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("revealed: got %v, want %v", got, want)
	}
}
