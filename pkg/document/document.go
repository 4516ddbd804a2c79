// Package document ties a parsed Markdown tree together with its identity
// layer: the per-document identity cache, the view-source mapping index,
// and the compatibility resolver that accepts both stable and legacy
// positional identifiers.
package document

import (
	"github.com/yaklabco/mdident/pkg/mdast"
	"github.com/yaklabco/mdident/pkg/sourcemap"
)

// FormatVersion is the serialization format version this package produces.
const FormatVersion = "1"

// Document owns a node tree, its view-source mappings, and its identity
// cache. Caches and mapping indexes are owned exclusively by their Document;
// sharing either across documents would leak identity state between
// unrelated trees.
type Document struct {
	// Root is the document node at the top of the tree.
	Root *mdast.Node

	// File is the snapshot the tree was parsed from. Nil for documents
	// rebuilt from serialized form.
	File *mdast.FileSnapshot

	// Mappings is the view-source mapping index, populated at parse time.
	Mappings *sourcemap.Index

	// Version is the serialization format version.
	Version string

	cache *IdentityCache
	mode  ResolveMode
}

// New creates a Document around a root node.
func New(root *mdast.Node) *Document {
	return &Document{
		Root:     root,
		Mappings: sourcemap.NewIndex(),
		Version:  FormatVersion,
		cache:    NewIdentityCache(mdast.DefaultMaxDepth),
	}
}

// NewFromSnapshot creates a Document for a parsed file snapshot.
func NewFromSnapshot(file *mdast.FileSnapshot) *Document {
	doc := New(file.Root)
	doc.File = file
	return doc
}

// Cache returns the document's identity cache.
func (d *Document) Cache() *IdentityCache {
	return d.cache
}

// Mode returns the document's default resolve mode.
func (d *Document) Mode() ResolveMode {
	return d.mode
}

// SetMode sets the document's default resolve mode. The mode only supplies
// the default for Resolve; FindNode callers pass the mode explicitly, so
// two documents (or two callers on one document) can run different modes
// side by side.
func (d *Document) SetMode(mode ResolveMode) {
	d.mode = mode
}

// Blocks returns the block-level nodes in document order, excluding the
// Document root itself. This is the order positional identifiers index
// into under compatibility mode.
func (d *Document) Blocks() []*mdast.Node {
	var blocks []*mdast.Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	mdast.WalkBlocks(d.Root, func(n *mdast.Node) error {
		if n.Kind != mdast.NodeDocument {
			blocks = append(blocks, n)
		}
		return nil
	})

	return blocks
}

// BlockSpan returns the view-source span for a node, projecting inline
// nodes onto their nearest enclosing block: if the node itself has no
// mapping, its ancestors are consulted in order. The second return is
// false when neither the node nor any ancestor is mapped.
func (d *Document) BlockSpan(n *mdast.Node) (sourcemap.Span, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.ID.IsZero() {
			continue
		}
		if span, ok := d.Mappings.Find(cur.ID); ok {
			return span, ok
		}
	}
	return sourcemap.Span{}, false
}

// AssignIdentity walks the tree and assigns every node its stable ID via
// the document's identity cache. Parsers call this once after building the
// tree; callers that splice in edited nodes may call it again to fill in
// any nodes that carry no ID yet (existing IDs are left untouched, per the
// operation-boundary rules in pkg/edit).
func (d *Document) AssignIdentity() error {
	return mdast.Walk(d.Root, func(n *mdast.Node) error {
		if !n.ID.IsZero() {
			return nil
		}
		id, err := d.cache.GetOrCompute(n)
		if err != nil {
			return err
		}
		n.ID = id
		return nil
	})
}
