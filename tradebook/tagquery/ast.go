package tagquery

// Node is a node of a parsed query expression tree.
type Node interface {
	isNode()
}

// TagNode is a leaf matching a single canonical tag.
type TagNode struct {
	Value string
}

func (TagNode) isNode() {}

// AndNode matches iff every child matches. With zero children it matches
// vacuously; the empty query parses to an empty AndNode.
type AndNode struct {
	Children []Node
}

func (AndNode) isNode() {}

// OrNode matches iff at least one child matches. With zero children it
// never matches, the opposite polarity of an empty AndNode.
type OrNode struct {
	Children []Node
}

func (OrNode) isNode() {}

// NotNode matches iff its single child does not match. The grammar only
// produces tag children, but evaluation handles any node.
type NotNode struct {
	Child Node
}

func (NotNode) isNode() {}
