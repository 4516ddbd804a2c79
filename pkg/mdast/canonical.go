package mdast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxDepth bounds canonicalization recursion. Documents nested deeper
// than this fail with StructureTooDeepError instead of overflowing the stack.
const DefaultMaxDepth = 1000

// fieldSep separates the kind discriminant and content fields inside a
// canonical form. It cannot appear in normalized text (it is a control
// character and whitespace normalization never produces it).
const fieldSep = 0x1f

// emptySentinel stands in for empty text content so that an empty field is
// still an unambiguous, deterministic byte sequence.
const emptySentinel = "\x00empty\x00"

// StructureTooDeepError reports that canonicalization exceeded its recursion
// bound. Fatal for the operation that triggered it.
type StructureTooDeepError struct {
	// Kind is the kind of the node at which the bound was hit.
	Kind NodeKind

	// Offset is the byte offset of that node in the source, or -1 when the
	// node is synthetic.
	Offset int

	// MaxDepth is the bound that was exceeded.
	MaxDepth int
}

func (e *StructureTooDeepError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("structure too deep: depth limit %d exceeded at %s node (offset %d)",
			e.MaxDepth, e.Kind, e.Offset)
	}
	return fmt.Sprintf("structure too deep: depth limit %d exceeded at %s node", e.MaxDepth, e.Kind)
}

// Canonicalize converts a node's semantically-relevant content into a
// normalized byte sequence, independent of incidental formatting. Two nodes
// with identical canonical bytes have identical identity.
//
// The form is: kind discriminant, 0x1f, content fields in a fixed per-kind
// order, each 0x1f-separated. Container kinds (List, ListItem, Blockquote,
// Document) append each child's canonical form length-prefixed, so
// concatenation is unambiguous. Text fields are NFC-normalized with tabs
// converted to spaces, whitespace runs collapsed, and ends trimmed.
//
// Presentation attributes never contribute: heading level, fence style,
// bullet markers, list tightness, and attached metadata canonicalize away,
// which is what keeps identity stable across structural re-wrapping.
func Canonicalize(n *Node) ([]byte, error) {
	return CanonicalizeDepth(n, DefaultMaxDepth)
}

// CanonicalizeDepth is Canonicalize with an explicit recursion bound.
func CanonicalizeDepth(n *Node, maxDepth int) ([]byte, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, n, maxDepth, maxDepth); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, n *Node, depth, maxDepth int) error {
	if depth <= 0 {
		offset := -1
		if !n.Span.IsEmpty() || n.File != nil {
			offset = n.Span.StartOffset
		}
		return &StructureTooDeepError{Kind: n.Kind, Offset: offset, MaxDepth: maxDepth}
	}

	buf.WriteString(discriminant(n.Kind))
	buf.WriteByte(fieldSep)

	switch n.Kind {
	case NodeHeading, NodeParagraph:
		writeField(buf, InlineText(n))

	case NodeCodeBlock:
		info := ""
		var code []byte
		if n.Block != nil && n.Block.CodeBlock != nil {
			info = n.Block.CodeBlock.Info
			code = n.Block.CodeBlock.Code
		}
		writeField(buf, info)
		buf.WriteByte(fieldSep)
		writeField(buf, string(code))

	case NodeList:
		ordered := false
		start := 0
		if n.Block != nil && n.Block.List != nil {
			ordered = n.Block.List.Ordered
			start = n.Block.List.StartNumber
		}
		if ordered {
			buf.WriteString("ordered")
			buf.WriteByte(fieldSep)
			buf.WriteString(strconv.Itoa(start))
		} else {
			buf.WriteString("bullet")
		}
		buf.WriteByte(fieldSep)
		return writeChildren(buf, n, depth, maxDepth)

	case NodeListItem, NodeBlockquote, NodeDocument:
		return writeChildren(buf, n, depth, maxDepth)

	case NodeRaw:
		// Unknown structure (e.g., GFM tables) canonicalizes by flattened
		// text so identity survives serialization, which stores raw nodes
		// as text rather than reproducing their internal shape.
		writeField(buf, InlineText(n))

	case NodeHTMLBlock:
		var html []byte
		if n.Block != nil {
			html = n.Block.HTML
		}
		writeField(buf, string(html))

	case NodeHTMLInline:
		writeField(buf, string(n.Text()))

	case NodeLink, NodeImage:
		dest := ""
		title := ""
		if n.Inline != nil && n.Inline.Link != nil {
			dest = n.Inline.Link.Destination
			title = n.Inline.Link.Title
		}
		writeField(buf, dest)
		buf.WriteByte(fieldSep)
		writeField(buf, title)
		buf.WriteByte(fieldSep)
		writeField(buf, InlineText(n))

	case NodeText, NodeCodeSpan:
		text := ""
		if n.Inline != nil {
			text = string(n.Inline.Text)
		}
		writeField(buf, text)

	case NodeEmphasis, NodeStrong:
		writeField(buf, InlineText(n))

	case NodeThematicBreak, NodeSoftBreak, NodeHardBreak:
		// Kind discriminant alone identifies these.
	}

	return nil
}

// writeChildren appends each child's canonical form, length-prefixed as
// "<len>:<bytes>", so that child boundaries are unambiguous.
func writeChildren(buf *bytes.Buffer, n *Node, depth, maxDepth int) error {
	for child := n.FirstChild; child != nil; child = child.Next {
		var childBuf bytes.Buffer
		if err := writeCanonical(&childBuf, child, depth-1, maxDepth); err != nil {
			return err
		}
		buf.WriteString(strconv.Itoa(childBuf.Len()))
		buf.WriteByte(':')
		buf.Write(childBuf.Bytes())
	}
	return nil
}

// writeField appends a normalized text field, substituting the empty
// sentinel when normalization leaves nothing.
func writeField(buf *bytes.Buffer, text string) {
	normalized := NormalizeText(text)
	if normalized == "" {
		buf.WriteString(emptySentinel)
		return
	}
	buf.WriteString(normalized)
}

// NormalizeText applies the canonical text normalization: NFC, tabs to
// spaces, leading/trailing whitespace stripped, and internal whitespace
// runs collapsed to a single space.
func NormalizeText(text string) string {
	normalized := norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(normalized))

	inRun := false
	for _, r := range normalized {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			inRun = true
			continue
		}
		if inRun && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inRun = false
		b.WriteRune(r)
	}

	return b.String()
}

// InlineText flattens the text content of a node's inline descendants in
// document order. Soft and hard breaks contribute a single space so that
// wrapped source lines normalize identically to unwrapped ones. The result
// is un-normalized; callers normalize as needed.
func InlineText(n *Node) string {
	var b strings.Builder

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(node *Node) error {
		switch node.Kind {
		case NodeText, NodeCodeSpan:
			if node.Inline != nil {
				b.Write(node.Inline.Text)
			}
		case NodeSoftBreak, NodeHardBreak:
			b.WriteByte(' ')
		}
		return nil
	})

	return b.String()
}

// HintText returns the un-normalized text a node's identity hint derives
// from. Kinds that carry no text return "", which maps to the fallback hint.
func HintText(n *Node) string {
	switch n.Kind {
	case NodeHeading, NodeParagraph, NodeListItem, NodeBlockquote,
		NodeList, NodeEmphasis, NodeStrong, NodeLink, NodeImage:
		return InlineText(n)
	case NodeCodeBlock:
		if n.Block != nil && n.Block.CodeBlock != nil {
			return string(n.Block.CodeBlock.Code)
		}
		return ""
	case NodeText, NodeCodeSpan:
		if n.Inline != nil {
			return string(n.Inline.Text)
		}
		return ""
	default:
		return ""
	}
}

// discriminant returns the stable kind discriminant used in canonical
// forms. These strings are part of the identity algorithm: renaming a kind
// must not change its discriminant.
func discriminant(k NodeKind) string {
	switch k {
	case NodeDocument:
		return "document"
	case NodeParagraph:
		return "paragraph"
	case NodeHeading:
		return "heading"
	case NodeList:
		return "list"
	case NodeListItem:
		return "listitem"
	case NodeBlockquote:
		return "blockquote"
	case NodeCodeBlock:
		return "codeblock"
	case NodeThematicBreak:
		return "thematicbreak"
	case NodeHTMLBlock:
		return "htmlblock"
	case NodeText:
		return "text"
	case NodeEmphasis:
		return "emphasis"
	case NodeStrong:
		return "strong"
	case NodeCodeSpan:
		return "codespan"
	case NodeLink:
		return "link"
	case NodeImage:
		return "image"
	case NodeSoftBreak:
		return "softbreak"
	case NodeHardBreak:
		return "hardbreak"
	case NodeHTMLInline:
		return "htmlinline"
	case NodeRaw:
		return "raw"
	default:
		return "unknown"
	}
}
