package goldmark

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdident/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree, assigning each
// node its byte span as it goes.
type mapper struct {
	file *mdast.FileSnapshot

	// cursor tracks the end offset of the last assigned span, used to
	// locate blocks goldmark keeps no segments for (thematic breaks,
	// empty fenced blocks).
	cursor int
}

// newMapper creates a new mapper for the given snapshot.
func newMapper(file *mdast.FileSnapshot) *mapper {
	return &mapper{file: file}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	doc.Span = unionChildSpans(doc)
	return doc
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node with its span.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(gmn.Level)
		m.mapChildren(gmNode, node)

	case *ast.Paragraph:
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapChildren(gmNode, node)

	case *ast.TextBlock:
		// Tight list items hold a TextBlock instead of a Paragraph; the
		// distinction is presentational, so both map to Paragraph.
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmNode, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *ast.Text:
		node = m.mapText(gmn)

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLink(gmn)

	case *ast.Image:
		node = m.mapImage(gmn)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)

	case *ast.String:
		node = mdast.NewText(gmn.Value)

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Ext = map[string]any{"strikethrough": true}
		m.mapChildren(gmNode, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": gmn.IsChecked}

	case *east.Table:
		node = mdast.NewNode(mdast.NodeRaw)
		node.Ext = map[string]any{"table": true}
		m.mapChildren(gmNode, node)

	case *east.TableHeader, *east.TableRow, *east.TableCell:
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	m.assignSpan(node, gmNode)

	return node
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}

	if list.IsOrdered() {
		// goldmark does not expose the delimiter; "." is the common case.
		listAttrs.Delimiter = "."
	} else {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(listAttrs)
	m.mapChildren(list, node)
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Value(m.file.Content))
	}

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		FenceChar:   m.detectFenceChar(codeBlock),
		FenceLength: 3,
		Info:        info,
		Indented:    false,
		Code:        m.collectCode(codeBlock),
	})
	return node
}

// mapIndentedCodeBlock converts a goldmark indented CodeBlock to an mdast node.
func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		Indented: true,
		Code:     m.collectCode(codeBlock),
	})
	return node
}

// mapHTMLBlock converts a goldmark HTMLBlock to an mdast node, capturing
// the literal source so the node's content survives without a snapshot.
func (m *mapper) mapHTMLBlock(htmlBlock *ast.HTMLBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLBlock)

	html := m.collectCode(htmlBlock)
	if htmlBlock.HasClosure() {
		html = append(html, htmlBlock.ClosureLine.Value(m.file.Content)...)
	}

	node.Block = mdast.NewBlockAttrs().WithHTML(html)
	return node
}

// collectCode concatenates a code block's content line segments.
func (m *mapper) collectCode(gmNode ast.Node) []byte {
	lines := gmNode.Lines()

	var code []byte
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code = append(code, seg.Value(m.file.Content)...)
	}
	return code
}

// mapText converts a goldmark Text node to an mdast node.
func (m *mapper) mapText(textNode *ast.Text) *mdast.Node {
	if textNode.SoftLineBreak() {
		return mdast.NewNode(mdast.NodeSoftBreak)
	}
	if textNode.HardLineBreak() {
		return mdast.NewNode(mdast.NodeHardBreak)
	}

	return mdast.NewText(textNode.Value(m.file.Content))
}

// mapEmphasis converts a goldmark Emphasis node to an mdast node.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	var node *mdast.Node

	if emphasis.Level == 2 {
		node = mdast.NewNode(mdast.NodeStrong)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(2)
	} else {
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(1)
	}

	m.mapChildren(emphasis, node)
	return node
}

// mapCodeSpan converts a goldmark CodeSpan to an mdast node.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			text = append(text, textNode.Value(m.file.Content)...)
		}
	}

	node.Inline = mdast.NewInlineAttrs().WithText(text)
	return node
}

// mapLink converts a goldmark Link to an mdast node.
func (m *mapper) mapLink(link *ast.Link) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(link.Destination),
		Title:       string(link.Title),
	})
	m.mapChildren(link, node)
	return node
}

// mapImage converts a goldmark Image to an mdast node.
func (m *mapper) mapImage(img *ast.Image) *mdast.Node {
	node := mdast.NewNode(mdast.NodeImage)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(img.Destination),
		Title:       string(img.Title),
	})
	m.mapChildren(img, node)
	return node
}

// mapAutoLink converts a goldmark AutoLink to an mdast node.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(al.URL(m.file.Content)),
		Autolink:    true,
	})

	mdast.AppendChild(node, mdast.NewText(al.Label(m.file.Content)))

	return node
}
