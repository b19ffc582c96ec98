// Package protocol decodes the line-oriented battle protocol used by
// Showdown replay transcripts. A protocol line starts with '|' and is
// '|'-delimited: the first field after the leading separator is the event
// tag, the rest are event-specific arguments. Anything else on a line —
// chat, HTML wrappers, blank lines — is not protocol and is skipped.
package protocol

import "strings"

// Separator delimits fields within a protocol line.
const Separator = "|"

// Side identifies a player slot within one battle.
type Side int

const (
	SideNone Side = 0
	Side1    Side = 1
	Side2    Side = 2
)

// Event is one decoded protocol line.
type Event struct {
	Tag  string
	Args []string // fields after the tag, in wire order
}

// DecodeLine splits one raw line into an Event. The second return value is
// false for lines that carry no event: empty after trimming, not starting
// with the separator, or too short to hold a tag.
func DecodeLine(line string) (Event, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.HasPrefix(trimmed, Separator) {
		return Event{}, false
	}
	parts := strings.Split(trimmed, Separator)
	if len(parts) < 2 {
		return Event{}, false
	}
	return Event{Tag: parts[1], Args: parts[2:]}, true
}

// Payload rejoins Args[from:] with the separator. Team exports and rich
// HTML blocks legitimately contain the separator inside their payload, so
// consumers must take the rejoined tail instead of re-splitting it.
func (e Event) Payload(from int) string {
	if from >= len(e.Args) {
		return ""
	}
	return strings.Join(e.Args[from:], Separator)
}

// ParseSlot extracts the side and optional in-battle nickname from a slot
// token such as "p1a: Nickname" or a bare side like "p2". hasNick is false
// when the token carries no colon at all.
func ParseSlot(slot string) (side Side, nickname string, hasNick bool) {
	head, tail, found := strings.Cut(slot, ":")
	switch {
	case strings.HasPrefix(strings.TrimSpace(head), "p1"):
		side = Side1
	case strings.HasPrefix(strings.TrimSpace(head), "p2"):
		side = Side2
	}
	if !found {
		return side, "", false
	}
	return side, strings.TrimSpace(tail), true
}

// SideFromName maps a bare side name ("p1"/"p2") to a Side.
func SideFromName(name string) Side {
	switch strings.TrimSpace(name) {
	case "p1":
		return Side1
	case "p2":
		return Side2
	default:
		return SideNone
	}
}

// SpeciesFromDetails extracts the species from a details field such as
// "Flutter Mane, L50, shiny" — the first comma-delimited token, with any
// display-only terastallized-form suffix stripped.
func SpeciesFromDetails(details string) string {
	head, _, _ := strings.Cut(details, ",")
	return NormalizeSpecies(strings.TrimSpace(head))
}

// NormalizeSpecies strips the "-Tera" suffix Showdown appends to the
// display form of a terastallized species.
func NormalizeSpecies(species string) string {
	return strings.TrimSuffix(species, "-Tera")
}
