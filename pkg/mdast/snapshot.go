// Package mdast provides the core Markdown AST representation for mdident.
// It defines an immutable view of Markdown content including:
// - FileSnapshot: the complete file representation
// - AST nodes: structural representation with byte spans and stable IDs
// - Canonicalize: the normalized byte form that node identity hashes over
package mdast

// FileSnapshot is an immutable view of a Markdown file at a specific time.
// It holds the raw content, line metadata, and AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the AST root node (Document).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not parse (that requires a Parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    nil,
	}
}
