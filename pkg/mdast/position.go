package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// SourceRange returns the byte range for this node.
// Synthetic nodes created by edits report an empty range.
func (n *Node) SourceRange() SourceRange {
	return n.Span
}

// SourcePosition returns the 1-based line/column range for this node.
// Returns an invalid position if the node has no associated file.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || n.Span.IsEmpty() {
		return SourcePosition{}
	}

	startLine, startCol := n.File.LineAt(n.Span.StartOffset)
	endLine, endCol := n.File.LineAt(n.Span.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Text returns the source text this node spans.
// Returns nil for synthetic nodes without an associated file.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}

	if n.Span.StartOffset < 0 || n.Span.EndOffset > len(n.File.Content) {
		return nil
	}

	return n.File.Content[n.Span.StartOffset:n.Span.EndOffset]
}
