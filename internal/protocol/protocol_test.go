package protocol

import "testing"

func TestDecodeLine_SkipsNonProtocol(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		"plain chat text",
		"<div class=\"battle-log\">",
	} {
		if _, ok := DecodeLine(line); ok {
			t.Errorf("DecodeLine(%q): expected skip", line)
		}
	}
}

func TestDecodeLine_TagAndArgs(t *testing.T) {
	ev, ok := DecodeLine("|switch|p1a: Minty|Flutter Mane, L50|100/100")
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Tag != "switch" {
		t.Errorf("tag: got %q", ev.Tag)
	}
	if len(ev.Args) != 3 {
		t.Fatalf("args: got %d, want 3", len(ev.Args))
	}
	if ev.Args[0] != "p1a: Minty" {
		t.Errorf("arg0: got %q", ev.Args[0])
	}
}

func TestDecodeLine_TrimsSurroundingWhitespace(t *testing.T) {
	ev, ok := DecodeLine("  |win|Alice\r\n")
	if !ok || ev.Tag != "win" || ev.Args[0] != "Alice" {
		t.Errorf("got %+v ok=%v", ev, ok)
	}
}

func TestPayload_RejoinsEmbeddedSeparators(t *testing.T) {
	// showteam payloads contain '|' inside the team data; the tail must be
	// rejoined, never re-split.
	ev, ok := DecodeLine("|showteam|p1|Incineroar||Safety Goggles|Intimidate|Fake Out,Knock Off|]Rillaboom||")
	if !ok {
		t.Fatal("expected a decoded event")
	}
	got := ev.Payload(1)
	want := "Incineroar||Safety Goggles|Intimidate|Fake Out,Knock Off|]Rillaboom||"
	if got != want {
		t.Errorf("payload:\n got %q\nwant %q", got, want)
	}
	if ev.Payload(len(ev.Args)) != "" {
		t.Error("payload past end should be empty")
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		slot    string
		side    Side
		nick    string
		hasNick bool
	}{
		{"p1a: Minty", Side1, "Minty", true},
		{"p2b: Iron Hands", Side2, "Iron Hands", true},
		{"p1", Side1, "", false},
		{"p2: ", Side2, "", true},
		{"spectator", SideNone, "", false},
	}
	for _, tt := range tests {
		side, nick, hasNick := ParseSlot(tt.slot)
		if side != tt.side || nick != tt.nick || hasNick != tt.hasNick {
			t.Errorf("ParseSlot(%q) = (%v, %q, %v), want (%v, %q, %v)",
				tt.slot, side, nick, hasNick, tt.side, tt.nick, tt.hasNick)
		}
	}
}

func TestSpeciesFromDetails(t *testing.T) {
	tests := []struct{ details, want string }{
		{"Flutter Mane, L50", "Flutter Mane"},
		{"Terapagos-Tera, L50, shiny", "Terapagos"},
		{"Incineroar", "Incineroar"},
		{" Urshifu-Rapid-Strike , L50, M", "Urshifu-Rapid-Strike"},
	}
	for _, tt := range tests {
		if got := SpeciesFromDetails(tt.details); got != tt.want {
			t.Errorf("SpeciesFromDetails(%q) = %q, want %q", tt.details, got, tt.want)
		}
	}
}
