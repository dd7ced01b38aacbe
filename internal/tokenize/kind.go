package tokenize

import (
	chroma "github.com/alecthomas/chroma/v2"

	"facet/internal/face"
)

// Kind is the coarse class of a token.
type Kind int

const (
	Text Kind = iota
	Keyword
	String
	Number
	Constant
	Comment
	Operator
	Punctuation
	MacroPrefix
	Bracket
	Identifier

	kindCount
)

var kindNames = [kindCount]string{
	Text:        "text",
	Keyword:     "keyword",
	String:      "string",
	Number:      "number",
	Constant:    "constant",
	Comment:     "comment",
	Operator:    "operator",
	Punctuation: "punctuation",
	MacroPrefix: "macro",
	Bracket:     "bracket",
	Identifier:  "identifier",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// FaceTable maps every kind to a face name. An empty name leaves the kind
// unstyled.
type FaceTable [kindCount]string

// DefaultFaces leaves identifiers and plain text unstyled.
var DefaultFaces = FaceTable{
	Text:        "",
	Keyword:     face.Keyword,
	String:      face.String,
	Number:      face.Number,
	Constant:    face.Constant,
	Comment:     face.Comment,
	Operator:    face.Operator,
	Punctuation: face.Punctuation,
	MacroPrefix: face.Macro,
	Bracket:     face.Punctuation,
	Identifier:  "",
}

// Face returns the face of k.
func (t *FaceTable) Face(k Kind) string {
	if k < 0 || k >= kindCount {
		return ""
	}
	return t[k]
}

func classify(tt chroma.TokenType) Kind {
	switch {
	case tt == chroma.NameDecorator, tt == chroma.CommentPreproc, tt == chroma.CommentPreprocFile:
		return MacroPrefix
	case tt == chroma.KeywordConstant, tt == chroma.NameBuiltinPseudo, tt == chroma.NameConstant:
		return Constant
	case tt.InCategory(chroma.Keyword), tt == chroma.OperatorWord:
		return Keyword
	case tt.InSubCategory(chroma.LiteralString):
		return String
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number
	case tt.InCategory(chroma.Literal):
		return Constant
	case tt.InCategory(chroma.Comment):
		return Comment
	case tt.InCategory(chroma.Operator):
		return Operator
	case tt.InCategory(chroma.Punctuation):
		return Punctuation
	case tt.InCategory(chroma.Name):
		return Identifier
	default:
		return Text
	}
}
