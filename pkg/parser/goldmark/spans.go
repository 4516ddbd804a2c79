package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdident/pkg/mdast"
)

// assignSpan computes and sets the byte span for a freshly mapped node.
//
// Block spans are widened to full line boundaries so that, e.g., a heading
// span covers "# Title" rather than just "Title". Fenced code blocks are
// expanded to include their fence lines. Blocks that retain no segments in
// goldmark (thematic breaks) are located by scanning forward from the last
// assigned span.
func (m *mapper) assignSpan(node *mdast.Node, gmNode ast.Node) {
	if node == nil {
		return
	}

	if gmNode.Type() == ast.TypeInline {
		start, stop := inlineByteRange(gmNode)
		if start >= 0 && stop > start {
			node.Span = mdast.SourceRange{StartOffset: start, EndOffset: stop}
		}
		return
	}

	lines := gmNode.Lines()
	if lines.Len() > 0 {
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		node.Span = m.widenToLines(first.Start, last.Stop)
	} else if node.HasChildren() {
		node.Span = unionChildSpans(node)
	} else if node.Kind == mdast.NodeThematicBreak {
		node.Span = m.scanLineFrom(m.cursor)
	}

	if _, isFenced := gmNode.(*ast.FencedCodeBlock); isFenced {
		node.Span = m.expandFences(node.Span)
	}

	if !node.Span.IsEmpty() && node.Span.EndOffset > m.cursor {
		m.cursor = node.Span.EndOffset
	}
}

// widenToLines expands a byte range to the line boundaries containing it,
// excluding trailing newline characters.
func (m *mapper) widenToLines(start, stop int) mdast.SourceRange {
	f := m.file

	widenedStart := f.LineStart(start)

	end := stop
	if stop > 0 {
		if line, _ := f.LineAt(stop - 1); line > 0 {
			end = f.Lines[line-1].NewlineStart
		}
	}

	if end < widenedStart {
		end = widenedStart
	}
	return mdast.SourceRange{StartOffset: widenedStart, EndOffset: end}
}

// expandFences grows a fenced code block's span to cover the opening fence
// line and, when present, the closing fence line.
func (m *mapper) expandFences(span mdast.SourceRange) mdast.SourceRange {
	f := m.file
	if len(f.Lines) == 0 {
		return span
	}

	if span.IsEmpty() {
		// An empty fenced block has no content lines; the fences sit at
		// the cursor.
		span = m.scanLineFrom(m.cursor)
		if span.IsEmpty() {
			return span
		}
	}

	startLine, _ := f.LineAt(span.StartOffset)

	// Opening fence is the line before the first content line, unless the
	// span already starts on it.
	if startLine > 1 && !isFenceLine(f.LineContent(startLine)) {
		if isFenceLine(f.LineContent(startLine - 1)) {
			span.StartOffset = f.Lines[startLine-2].StartOffset
		}
	}

	// Closing fence is the line after the last content line, if it exists
	// and looks like a fence (unclosed blocks run to EOF without one).
	endLine := 1
	if span.EndOffset > 0 {
		endLine, _ = f.LineAt(span.EndOffset - 1)
	}
	if endLine > 0 && endLine < len(f.Lines) && !isFenceLine(f.LineContent(endLine)) {
		if isFenceLine(f.LineContent(endLine + 1)) {
			span.EndOffset = f.Lines[endLine].NewlineStart
		}
	}

	return span
}

// scanLineFrom returns the span of the first non-blank line at or after
// the given offset.
func (m *mapper) scanLineFrom(offset int) mdast.SourceRange {
	f := m.file

	startLine, _ := f.LineAt(offset)
	if startLine == 0 {
		return mdast.SourceRange{}
	}

	// The offset may sit mid-line at the end of the previous block's
	// content; that line is already consumed.
	if offset > f.Lines[startLine-1].StartOffset {
		startLine++
	}

	for line := startLine; line <= len(f.Lines); line++ {
		content := bytes.TrimSpace(f.LineContent(line))
		if len(content) > 0 {
			info := f.Lines[line-1]
			return mdast.SourceRange{StartOffset: info.StartOffset, EndOffset: info.NewlineStart}
		}
	}

	return mdast.SourceRange{}
}

// detectFenceChar reads the fence character from the opening fence line.
func (m *mapper) detectFenceChar(codeBlock *ast.FencedCodeBlock) byte {
	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return '`'
	}

	contentLine, _ := m.file.LineAt(lines.At(0).Start)
	if contentLine <= 1 {
		return '`'
	}

	fence := bytes.TrimLeft(m.file.LineContent(contentLine-1), " \t")
	if len(fence) > 0 && (fence[0] == '`' || fence[0] == '~') {
		return fence[0]
	}
	return '`'
}

// isFenceLine reports whether a line is a code fence (three or more
// backticks or tildes after up to three spaces of indentation).
func isFenceLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return false
	}

	fenceChar := trimmed[0]
	if fenceChar != '`' && fenceChar != '~' {
		return false
	}

	count := 0
	for count < len(trimmed) && trimmed[count] == fenceChar {
		count++
	}
	return count >= 3
}

// unionChildSpans returns the smallest range covering all non-empty child
// spans. Container blocks (lists, list items, blockquotes) get their spans
// this way since goldmark keeps segments only on leaf blocks.
func unionChildSpans(n *mdast.Node) mdast.SourceRange {
	start := -1
	end := -1

	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Span.IsEmpty() {
			continue
		}
		if start == -1 || child.Span.StartOffset < start {
			start = child.Span.StartOffset
		}
		if child.Span.EndOffset > end {
			end = child.Span.EndOffset
		}
	}

	if start == -1 {
		return mdast.SourceRange{}
	}
	return mdast.SourceRange{StartOffset: start, EndOffset: end}
}

// inlineByteRange extracts the byte range for inline nodes from their text
// segments.
func inlineByteRange(gmNode ast.Node) (int, int) {
	start := -1
	end := -1

	// RawHTML nodes carry their own segment list.
	if rawHTML, ok := gmNode.(*ast.RawHTML); ok {
		segs := rawHTML.Segments
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
		return start, end
	}

	if t, ok := gmNode.(*ast.Text); ok {
		return t.Segment.Start, t.Segment.Stop
	}

	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			if start == -1 || t.Segment.Start < start {
				start = t.Segment.Start
			}
			if t.Segment.Stop > end {
				end = t.Segment.Stop
			}
		}
	}

	return start, end
}
