package treesit

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"facet/internal/face"
)

type leaf struct {
	start int
	end   int
	face  string
}

func collectLeaves(node *sitter.Node, src []byte, lang *Language, parent, grand NodeKind, out *[]leaf) {
	if node == nil {
		return
	}

	start := int(node.StartByte())
	end := int(node.EndByte())
	if start >= end {
		return
	}

	if node.ChildCount() == 0 || (node.IsNamed() && isAtomic(node.Type())) {
		if name := classifyLeaf(lang, node, parent, grand, src[start:end]); name != "" {
			*out = append(*out, leaf{start: start, end: end, face: name})
		}
		return
	}

	next := NodeKind(node.Type())
	for i := 0; i < int(node.ChildCount()); i++ {
		collectLeaves(node.Child(i), src, lang, next, parent, out)
	}
}

// classifyLeaf returns the face of a leaf node, or "" for plain text.
func classifyLeaf(lang *Language, node *sitter.Node, parent, grand NodeKind, text []byte) string {
	nodeType := strings.ToLower(node.Type())
	parentType := strings.ToLower(string(parent))
	grandType := strings.ToLower(string(grand))
	lexeme := strings.ToLower(strings.TrimSpace(string(text)))

	if NodeKind(node.Type()) == kindError || strings.Contains(nodeType, "invalid") {
		return face.Error
	}
	if lang.Comments[NodeKind(node.Type())] || strings.Contains(nodeType, "comment") {
		return face.Comment
	}
	if strings.Contains(nodeType, "string") || strings.Contains(nodeType, "char") || strings.Contains(nodeType, "heredoc") {
		if lang.KeyStrings && isPairKey(node, parentType) {
			return face.Type
		}
		return face.String
	}
	if strings.Contains(nodeType, "number") || strings.Contains(nodeType, "integer") || strings.Contains(nodeType, "float") || strings.Contains(nodeType, "numeric") || nodeType == "int_literal" || nodeType == "imaginary_literal" {
		return face.Number
	}
	if constantWords[lexeme] {
		return face.Constant
	}

	if strings.HasSuffix(nodeType, "keyword") {
		return face.Keyword
	}

	if strings.Contains(nodeType, "type_identifier") || strings.Contains(nodeType, "primitive_type") || strings.Contains(nodeType, "predefined_type") {
		return face.Type
	}

	if isIdentifierNode(nodeType) {
		if isTypeContext(lang, parentType, grandType, parent, grand) {
			return face.Type
		}
		if isFunctionContext(lang, parentType, grandType, parent, grand) {
			return face.Function
		}
		if isLikelyConstant(lexeme) {
			return face.Constant
		}
		return ""
	}

	if node.IsNamed() {
		return ""
	}
	if keywordSet[lexeme] {
		return face.Keyword
	}
	if punctuationSet[lexeme] {
		return face.Punctuation
	}
	if operatorSet[lexeme] || looksLikeOperator(lexeme) {
		return face.Operator
	}
	return ""
}

func isPairKey(node *sitter.Node, parentType string) bool {
	if parentType != "pair" {
		return false
	}
	p := node.Parent()
	if p == nil {
		return false
	}
	key := p.NamedChild(0)
	return key != nil && key.StartByte() == node.StartByte()
}

// isAtomic reports whether a named node is styled as a unit. String
// literals hold quote and content children that read better as one span.
func isAtomic(nodeType string) bool {
	t := strings.ToLower(nodeType)
	return (strings.Contains(t, "string") && !strings.Contains(t, "content")) || strings.Contains(t, "comment")
}

func isIdentifierNode(nodeType string) bool {
	return nodeType == "identifier" || strings.HasSuffix(nodeType, "identifier") || strings.HasSuffix(nodeType, "name") || nodeType == "constant"
}

func isFunctionContext(lang *Language, parentType, grandType string, parent, grand NodeKind) bool {
	for _, t := range []string{parentType, grandType} {
		if strings.Contains(t, "function") || strings.Contains(t, "method") || strings.Contains(t, "call") {
			return true
		}
	}
	return lang.FunctionContext[parent] || lang.FunctionContext[grand]
}

func isTypeContext(lang *Language, parentType, grandType string, parent, grand NodeKind) bool {
	for _, t := range []string{parentType, grandType} {
		for _, hint := range typeHints {
			if strings.Contains(t, hint) {
				return true
			}
		}
	}
	return lang.TypeContext[parent] || lang.TypeContext[grand]
}

var typeHints = []string{"type", "class", "struct", "interface", "trait"}

func isLikelyConstant(s string) bool {
	if len(s) < 2 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		switch {
		case r == '_', unicode.IsDigit(r):
			continue
		case unicode.IsLetter(r):
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		default:
			return false
		}
	}
	return hasLetter
}

func looksLikeOperator(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("+-*/%=!<>&|^~:?", r) {
			return false
		}
	}
	return true
}

var constantWords = map[string]bool{
	"true": true, "false": true, "null": true, "nil": true, "none": true,
	"undefined": true, "self": true,
}

var keywordSet = map[string]bool{
	"as": true, "async": true, "await": true, "begin": true, "break": true,
	"case": true, "catch": true, "class": true, "const": true, "continue": true,
	"def": true, "default": true, "defer": true, "do": true, "done": true,
	"elif": true, "else": true, "elsif": true, "end": true, "ensure": true,
	"enum": true, "esac": true, "export": true, "extends": true,
	"fallthrough": true, "fi": true, "finally": true, "fn": true, "for": true,
	"from": true, "func": true, "function": true, "go": true, "if": true,
	"impl": true, "import": true, "in": true, "include": true, "interface": true,
	"let": true, "local": true, "loop": true, "match": true, "mod": true,
	"module": true, "mut": true, "namespace": true, "new": true, "package": true,
	"pub": true, "raise": true, "rescue": true, "return": true, "select": true,
	"struct": true, "switch": true, "then": true, "trait": true, "try": true,
	"type": true, "unless": true, "until": true, "use": true, "var": true,
	"when": true, "while": true, "with": true, "yield": true,
}

var operatorSet = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "==": true, "!=": true, "<": true, "<=": true,
	">": true, ">=": true, "&&": true, "||": true, "!": true,
	"&": true, "|": true, "^": true, "~": true, "->": true,
	"=>": true, "::": true, ":=": true, "?": true,
}

var punctuationSet = map[string]bool{
	"(": true, ")": true, "[": true, "]": true, "{": true, "}": true,
	",": true, ";": true, ".": true, ":": true,
}
