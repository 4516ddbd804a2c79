package mdast

import "github.com/yaklabco/mdident/pkg/identity"

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeParagraph:
		return "Paragraph"
	case NodeHeading:
		return "Heading"
	case NodeList:
		return "List"
	case NodeListItem:
		return "ListItem"
	case NodeBlockquote:
		return "Blockquote"
	case NodeCodeBlock:
		return "CodeBlock"
	case NodeThematicBreak:
		return "ThematicBreak"
	case NodeHTMLBlock:
		return "HTMLBlock"
	case NodeText:
		return "Text"
	case NodeEmphasis:
		return "Emphasis"
	case NodeStrong:
		return "Strong"
	case NodeCodeSpan:
		return "CodeSpan"
	case NodeLink:
		return "Link"
	case NodeImage:
		return "Image"
	case NodeSoftBreak:
		return "SoftBreak"
	case NodeHardBreak:
		return "HardBreak"
	case NodeHTMLInline:
		return "HTMLInline"
	case NodeRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
//
// Node content is treated as immutable once built: content-changing
// operations (pkg/edit) construct new node values rather than mutating
// shared state, so an assigned ID never goes stale for a given instance.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// ID is the stable, content-derived identifier. Zero until assigned by
	// a Document's identity cache or a pkg/edit operation.
	ID identity.NodeID

	// Span is the byte range this node covers in the originating source.
	// Empty for synthetic nodes created by edits.
	Span SourceRange

	// File is a back-reference to the containing FileSnapshot.
	// Nil for synthetic nodes.
	File *FileSnapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs

	// Meta holds caller-attached metadata. Metadata is never part of
	// identity: attaching or replacing it preserves the node's ID.
	Meta map[string]string

	// Ext holds extension-specific attributes (e.g., GFM).
	Ext map[string]any
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink,
		NodeImage, NodeSoftBreak, NodeHardBreak, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
