// Package teamsheet decodes the packed team-export payload carried by a
// showteam protocol event. The payload is a sequence of ']'-terminated
// chunks, one per roster entry, each a '|'-delimited positional record:
//
//	name | alt | item | ability | moves | ... | tera type
//
// The final field is a comma-packed tail whose last element is the tera
// type, so any leading commas on it are format artifacts to strip.
package teamsheet

import (
	"strings"

	"github.com/vgcstats/go-showdown-metrics/internal/model"
	"github.com/vgcstats/go-showdown-metrics/internal/protocol"
)

// minFields is the smallest chunk that can carry name through moves plus a
// tail; shorter chunks are malformed entries and are dropped.
const minFields = 6

// Decode parses a rejoined showteam payload into roster entries, in chunk
// order. Malformed chunks are dropped, never fatal.
func Decode(payload string) []model.TeamMember {
	var team []model.TeamMember
	for _, chunk := range strings.Split(payload, "]") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		fields := strings.Split(chunk, protocol.Separator)
		if len(fields) < minFields {
			continue
		}

		member := model.TeamMember{
			Name:     strings.TrimSpace(fields[0]),
			Item:     optional(fields[2]),
			Ability:  optional(fields[3]),
			Moves:    splitMoves(fields[4]),
			TeraType: optional(strings.TrimLeft(strings.TrimSpace(fields[len(fields)-1]), ",")),
		}
		team = append(team, member)
	}
	return team
}

// Encode renders roster entries back into the packed payload form, one
// canonical 6-field chunk per entry. Nil optionals become empty fields.
func Encode(team []model.TeamMember) string {
	var b strings.Builder
	for _, m := range team {
		b.WriteString(m.Name)
		b.WriteString("||") // alt slot unused
		b.WriteString(deref(m.Item))
		b.WriteString(protocol.Separator)
		b.WriteString(deref(m.Ability))
		b.WriteString(protocol.Separator)
		b.WriteString(strings.Join(m.Moves, ","))
		b.WriteString(protocol.Separator)
		if m.TeraType != nil {
			b.WriteString(",")
			b.WriteString(*m.TeraType)
		}
		b.WriteString("]")
	}
	return b.String()
}

// splitMoves parses the comma-joined move list, dropping empty tokens.
func splitMoves(field string) []string {
	var moves []string
	for _, m := range strings.Split(field, ",") {
		if m = strings.TrimSpace(m); m != "" {
			moves = append(moves, m)
		}
	}
	return moves
}

// optional trims s and returns nil for an empty result — absent values
// must stay distinct from empty strings downstream.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
