// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdtree

// Node is one element of a parsed markdown document. The concrete type is
// always one of *Container, *ListItem, *Paragraph, *Text, or *Other.
type Node interface {
	node()
}

// CheckState is the tri-state checkbox marker of a list item.
type CheckState int

const (
	// NotCheckbox marks a plain list item with no [ ] or [x] marker.
	NotCheckbox CheckState = iota
	Unchecked
	Checked
)

// String returns a short label for the state.
func (s CheckState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checked:
		return "checked"
	default:
		return "none"
	}
}

// Container is any node with ordered children that the extractor does not
// inspect by shape: the document root, lists, block quotes, headings,
// emphasis, links and so on. Kind names the underlying markdown construct.
type Container struct {
	Kind     string
	Children []Node
}

// ListItem is a list entry. Check is NotCheckbox unless the item starts with
// a GFM task marker.
type ListItem struct {
	Check    CheckState
	Children []Node
}

// Paragraph holds inline content. Tight-list text blocks are paragraphs too.
type Paragraph struct {
	Children []Node
}

// Text is a maximal run of adjacent plain text. Soft line breaks inside the
// run appear as "\n".
type Text struct {
	Value string
}

// Other is a childless node that carries no plain text, such as a thematic
// break, a hard line break, or an HTML block.
type Other struct {
	Kind string
}

func (*Container) node() {}
func (*ListItem) node()  {}
func (*Paragraph) node() {}
func (*Text) node()      {}
func (*Other) node()     {}

// Children returns the ordered children of n, or nil for leaf variants.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Container:
		return n.Children
	case *ListItem:
		return n.Children
	case *Paragraph:
		return n.Children
	case *Text, *Other:
		return nil
	default:
		return nil
	}
}
