package treesit

// NodeKind is a tree-sitter node type name of one grammar.
type NodeKind string

// Class is the indentation role of a node kind.
type Class int

const (
	// Neutral nodes do not change nesting.
	Neutral Class = iota
	// Block nodes add one level for positions inside them on later lines.
	Block
	// Continuation nodes add one level only when they span several lines.
	Continuation
)

func (c Class) String() string {
	switch c {
	case Block:
		return "block"
	case Continuation:
		return "continuation"
	default:
		return "neutral"
	}
}

// Classes is the indentation table of one grammar. Kinds missing from the
// table are Neutral.
type Classes map[NodeKind]Class

// Of returns the class of k.
func (c Classes) Of(k NodeKind) Class {
	return c[k]
}

// KindSet is a set of node kinds.
type KindSet map[NodeKind]bool

func kinds(ks ...NodeKind) KindSet {
	set := make(KindSet, len(ks))
	for _, k := range ks {
		set[k] = true
	}
	return set
}

func classes(block []NodeKind, cont []NodeKind) Classes {
	out := make(Classes, len(block)+len(cont))
	for _, k := range block {
		out[k] = Block
	}
	for _, k := range cont {
		out[k] = Continuation
	}
	return out
}

const kindError NodeKind = "ERROR"
