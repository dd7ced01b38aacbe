package treesit

import (
	sitter "github.com/smacker/go-tree-sitter"

	"facet/internal/grammar"
)

// Tree is one parse of a buffer text.
type Tree struct {
	lang    *Language
	tree    *sitter.Tree
	root    *sitter.Node
	src     []byte
	offsets *grammar.Offsets
}

// Root returns the root node.
func (t *Tree) Root() *sitter.Node {
	return t.root
}

// Offsets returns the offset index of the parsed text.
func (t *Tree) Offsets() *grammar.Offsets {
	return t.offsets
}

// Language returns the grammar the tree was parsed with.
func (t *Tree) Language() *Language {
	return t.lang
}

// Close releases the underlying tree.
func (t *Tree) Close() {
	if t == nil || t.tree == nil {
		return
	}
	t.tree.Close()
	t.tree = nil
}

// Depth returns the nesting depth at byte offset pos.
//
// A Block counts when pos lies strictly inside it and it starts on an
// earlier line. A Continuation counts under the same condition when it
// spans several lines and does not open with a comment. Every start line
// contributes at most one level; the outermost node on that line wins.
func (t *Tree) Depth(pos int) int {
	if t == nil || t.root == nil {
		return 0
	}
	line := uint32(t.offsets.LineOf(pos))
	counted := make(map[uint32]bool)

	depth := 0
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			child := n.Child(i)
			if child == nil || !t.contains(child, pos) {
				continue
			}
			start := child.StartPoint().Row
			if start >= line {
				continue
			}
			if !counted[start] && t.qualifies(child) {
				counted[start] = true
				depth++
			}
			walk(child)
		}
	}
	walk(t.root)
	return depth
}

// LineDepth returns the nesting depth at the first byte of a 0-based line.
func (t *Tree) LineDepth(line int) int {
	if t == nil {
		return 0
	}
	return t.Depth(t.offsets.LineStart(line))
}

func (t *Tree) qualifies(n *sitter.Node) bool {
	switch t.lang.Classes.Of(NodeKind(n.Type())) {
	case Block:
		return true
	case Continuation:
		if n.StartPoint().Row == n.EndPoint().Row {
			return false
		}
		first := n.NamedChild(0)
		return first == nil || !t.lang.Comments[NodeKind(first.Type())]
	default:
		return false
	}
}

// contains reports whether pos lies in n. A node whose closing token was
// inserted by error recovery also holds its end offset, so the line after
// an unterminated block still nests.
func (t *Tree) contains(n *sitter.Node, pos int) bool {
	start, end := int(n.StartByte()), int(n.EndByte())
	if pos >= start && pos < end {
		return true
	}
	return pos == end && endsMissing(n)
}

func endsMissing(n *sitter.Node) bool {
	count := int(n.ChildCount())
	if count == 0 {
		return n.IsMissing()
	}
	last := n.Child(count - 1)
	return last != nil && last.IsMissing()
}
