package teamsheet

import (
	"reflect"
	"testing"
)

const samplePayload = "Incineroar||Safety Goggles|Intimidate|Fake Out,Knock Off,Parting Shot,Flare Blitz|||||||,,,,,Grass]" +
	"Flutter Mane||Booster Energy|Protosynthesis|Moonblast,Shadow Ball,Protect,Dazzling Gleam|||||||,,,,,Fairy]"

func TestDecode_PositionalSchema(t *testing.T) {
	team := Decode(samplePayload)
	if len(team) != 2 {
		t.Fatalf("expected 2 members, got %d", len(team))
	}

	inc := team[0]
	if inc.Name != "Incineroar" {
		t.Errorf("name: got %q", inc.Name)
	}
	if inc.Item == nil || *inc.Item != "Safety Goggles" {
		t.Errorf("item: got %v", inc.Item)
	}
	if inc.Ability == nil || *inc.Ability != "Intimidate" {
		t.Errorf("ability: got %v", inc.Ability)
	}
	wantMoves := []string{"Fake Out", "Knock Off", "Parting Shot", "Flare Blitz"}
	if !reflect.DeepEqual(inc.Moves, wantMoves) {
		t.Errorf("moves: got %v", inc.Moves)
	}
	if inc.TeraType == nil || *inc.TeraType != "Grass" {
		t.Errorf("tera: got %v, want Grass (leading commas stripped)", inc.TeraType)
	}
	if team[1].Name != "Flutter Mane" {
		t.Errorf("chunk order not preserved: got %q second", team[1].Name)
	}
}

func TestDecode_AbsentOptionalsAreNil(t *testing.T) {
	team := Decode("Ditto||||Transform||||||]")
	if len(team) != 1 {
		t.Fatalf("expected 1 member, got %d", len(team))
	}
	m := team[0]
	if m.Item != nil {
		t.Errorf("empty item should be nil, got %q", *m.Item)
	}
	if m.Ability != nil {
		t.Errorf("empty ability should be nil, got %q", *m.Ability)
	}
	if m.TeraType != nil {
		t.Errorf("empty tera should be nil, got %q", *m.TeraType)
	}
	if len(m.Moves) != 1 || m.Moves[0] != "Transform" {
		t.Errorf("moves: got %v", m.Moves)
	}
}

func TestDecode_DropsMalformedChunks(t *testing.T) {
	// Second chunk has fewer than 6 fields and must vanish; trailing empty
	// chunk after the last ']' must not produce an entry.
	payload := "Incineroar||Item|Ability|Fake Out|,Grass]bad|chunk]  ]"
	team := Decode(payload)
	if len(team) != 1 {
		t.Fatalf("expected 1 member after dropping malformed chunks, got %d", len(team))
	}
	if team[0].Name != "Incineroar" {
		t.Errorf("kept wrong chunk: %q", team[0].Name)
	}
}

func TestDecode_EmptyMoveTokensFiltered(t *testing.T) {
	team := Decode("Ditto|||Imposter|Transform,, ,|,Normal]")
	if len(team) != 1 {
		t.Fatalf("expected 1 member, got %d", len(team))
	}
	if len(team[0].Moves) != 1 || team[0].Moves[0] != "Transform" {
		t.Errorf("moves: got %v, want [Transform]", team[0].Moves)
	}
}

func TestRoundTrip_EncodeDecode(t *testing.T) {
	team := Decode(samplePayload)
	again := Decode(Encode(team))
	if !reflect.DeepEqual(team, again) {
		t.Errorf("round trip changed the roster:\n first %+v\nsecond %+v", team, again)
	}
}
