// Package goldmark provides the Markdown parser front-end using the
// goldmark library. It produces a document.Document with identities
// assigned and view-source mappings recorded.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdident/pkg/document"
	"github.com/yaklabco/mdident/pkg/mdast"
	"github.com/yaklabco/mdident/pkg/sourcemap"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser converts raw Markdown into identity-bearing documents.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a document.Document.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a FileSnapshot with path, content, and line index.
//  3. Parses content with goldmark.
//  4. Builds the mdast tree, assigning block spans from goldmark segments.
//  5. Assigns every node its stable identity through the document's cache.
//  6. Records a view-source mapping for every block-level node.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))

	reader := text.NewReader(snapshot.Content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(snapshot)
	snapshot.Root = m.mapDocument(gmDoc)
	mdast.SetFile(snapshot.Root, snapshot)

	doc := document.NewFromSnapshot(snapshot)
	if err := doc.AssignIdentity(); err != nil {
		return nil, fmt.Errorf("assign identity: %w", err)
	}

	recordMappings(doc, snapshot)

	return doc, nil
}

// recordMappings records one view-source mapping per block-level node, in
// document order. The Document root is excluded: it spans the whole file
// and carries no useful provenance.
func recordMappings(doc *document.Document, snapshot *mdast.FileSnapshot) {
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	mdast.WalkBlocks(snapshot.Root, func(n *mdast.Node) error {
		if n.Kind == mdast.NodeDocument || n.Span.IsEmpty() {
			return nil
		}
		doc.Mappings.Record(n.ID, spanFor(snapshot, n.Span))
		return nil
	})
}

// spanFor converts a byte range into a sourcemap.Span with 1-based lines
// and 0-based byte columns.
func spanFor(f *mdast.FileSnapshot, r mdast.SourceRange) sourcemap.Span {
	startLine, startCol := f.LineAt(r.StartOffset)
	endLine, endCol := f.LineAt(r.EndOffset)

	return sourcemap.Span{
		StartOffset: r.StartOffset,
		EndOffset:   r.EndOffset,
		StartLine:   startLine,
		StartCol:    startCol - 1,
		EndLine:     endLine,
		EndCol:      endCol - 1,
	}
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
