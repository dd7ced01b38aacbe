package render

import (
	"fmt"
	"strings"
)

// Policy decides which faces style a character covered by several spans.
type Policy int

const (
	// LastWins styles with the most recently added span.
	LastWins Policy = iota
	// FirstWins styles with the earliest added span.
	FirstWins
	// Layered merges every covering face in insertion order, later faces
	// overriding the colors of earlier ones.
	Layered
)

func (p Policy) String() string {
	switch p {
	case FirstWins:
		return "first-wins"
	case Layered:
		return "layered"
	default:
		return "last-wins"
	}
}

// ParsePolicy accepts the names returned by Policy.String. Empty means
// LastWins.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-wins":
		return LastWins, nil
	case "first-wins":
		return FirstWins, nil
	case "layered":
		return Layered, nil
	default:
		return LastWins, fmt.Errorf("unknown overlap policy %q", s)
	}
}

// pick reduces the covering faces of one character, given in insertion
// order.
func (p Policy) pick(faces []string) []string {
	if len(faces) <= 1 {
		return faces
	}
	switch p {
	case FirstWins:
		return faces[:1]
	case Layered:
		return faces
	default:
		return faces[len(faces)-1:]
	}
}
