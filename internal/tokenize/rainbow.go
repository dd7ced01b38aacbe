package tokenize

import "facet/internal/span"

type bracketFamily int

const (
	parens bracketFamily = iota
	squares
	braces

	familyCount
)

func bracketOf(r rune) (bracketFamily, bool, bool) {
	switch r {
	case '(':
		return parens, true, true
	case ')':
		return parens, false, true
	case '[':
		return squares, true, true
	case ']':
		return squares, false, true
	case '{':
		return braces, true, true
	case '}':
		return braces, false, true
	}
	return 0, false, false
}

func isBracket(r rune) bool {
	_, _, ok := bracketOf(r)
	return ok
}

// Rainbow colors brackets by nesting depth, one counter per bracket family.
type Rainbow struct {
	Palette []string
}

// Color returns one span per bracket token. An opener takes the color of
// the current depth before descending; a closer ascends first, so a matched
// pair shares a color. Unmatched closers clamp at depth zero.
func (r Rainbow) Color(tokens []Token) []span.Span {
	k := len(r.Palette)
	if k == 0 {
		return nil
	}

	var depth [familyCount]int
	out := make([]span.Span, 0, 16)
	for _, tok := range tokens {
		if tok.Kind != Bracket {
			continue
		}
		runes := []rune(tok.Value)
		if len(runes) != 1 {
			continue
		}
		fam, open, ok := bracketOf(runes[0])
		if !ok {
			continue
		}

		var slot int
		if open {
			slot = depth[fam] % k
			depth[fam]++
		} else {
			depth[fam] = max(0, depth[fam]-1)
			slot = depth[fam] % k
		}
		out = append(out, span.Span{Start: tok.Start, End: tok.End, Face: r.Palette[slot]})
	}
	return out
}
