// Package edit implements identity-aware editing operations on nodes.
//
// Identity is preserved or regenerated by operation class, not by
// inspecting the change:
//
//   - Structure-preserving operations (heading promotion/demotion,
//     attaching metadata) keep the node's ID.
//   - Content-replacing operations always regenerate the ID through the
//     canonicalize-and-derive pipeline, even when the replacement is
//     byte-identical to the original. Regeneration is cheap and rules out
//     stale identity.
//
// Every operation returns a new, detached node value; the input node and
// any tree it belongs to are never mutated.
package edit

import (
	"fmt"

	"github.com/yaklabco/mdident/pkg/identity"
	"github.com/yaklabco/mdident/pkg/mdast"
)

// KindError reports an operation applied to the wrong node kind.
// A programmer error surfaced as a value so call sites stay explicit.
type KindError struct {
	Op   string
	Want mdast.NodeKind
	Got  mdast.NodeKind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: want %s node, got %s", e.Op, e.Want, e.Got)
}

// SetHeadingLevel returns a copy of the heading with the given level.
// Level changes are structural wrapping: the ID is preserved.
func SetHeadingLevel(n *mdast.Node, level int) (*mdast.Node, error) {
	if n.Kind != mdast.NodeHeading {
		return nil, &KindError{Op: "set heading level", Want: mdast.NodeHeading, Got: n.Kind}
	}
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("set heading level: level %d out of range 1-6", level)
	}

	cp := mdast.Clone(n)
	if cp.Block == nil {
		cp.Block = mdast.NewBlockAttrs()
	}
	cp.Block.HeadingLevel = level
	return cp, nil
}

// SetMeta returns a copy of the node with the metadata key set.
// Metadata is not content: the ID is preserved.
func SetMeta(n *mdast.Node, key, value string) *mdast.Node {
	cp := mdast.Clone(n)
	if cp.Meta == nil {
		cp.Meta = make(map[string]string, 1)
	}
	cp.Meta[key] = value
	return cp
}

// ReplaceHeadingText returns a copy of the heading whose inline content is
// the given text, with a freshly regenerated ID.
func ReplaceHeadingText(n *mdast.Node, text string) (*mdast.Node, error) {
	if n.Kind != mdast.NodeHeading {
		return nil, &KindError{Op: "replace heading text", Want: mdast.NodeHeading, Got: n.Kind}
	}
	return replaceInlineText(n, text)
}

// ReplaceParagraphText returns a copy of the paragraph whose inline content
// is the given text, with a freshly regenerated ID.
func ReplaceParagraphText(n *mdast.Node, text string) (*mdast.Node, error) {
	if n.Kind != mdast.NodeParagraph {
		return nil, &KindError{Op: "replace paragraph text", Want: mdast.NodeParagraph, Got: n.Kind}
	}
	return replaceInlineText(n, text)
}

// ReplaceCodeText returns a copy of the code block with new source text and
// a freshly regenerated ID.
func ReplaceCodeText(n *mdast.Node, code []byte) (*mdast.Node, error) {
	if n.Kind != mdast.NodeCodeBlock {
		return nil, &KindError{Op: "replace code text", Want: mdast.NodeCodeBlock, Got: n.Kind}
	}

	cp := mdast.Clone(n)
	if cp.Block == nil {
		cp.Block = mdast.NewBlockAttrs()
	}
	if cp.Block.CodeBlock == nil {
		cp.Block.CodeBlock = &mdast.CodeBlockAttrs{}
	}
	cp.Block.CodeBlock.Code = append([]byte(nil), code...)

	return regenerate(cp)
}

// ReplaceCodeInfo returns a copy of the code block with a new info string
// (language identifier). The info string is content, so the ID is
// regenerated.
func ReplaceCodeInfo(n *mdast.Node, info string) (*mdast.Node, error) {
	if n.Kind != mdast.NodeCodeBlock {
		return nil, &KindError{Op: "replace code info", Want: mdast.NodeCodeBlock, Got: n.Kind}
	}

	cp := mdast.Clone(n)
	if cp.Block == nil {
		cp.Block = mdast.NewBlockAttrs()
	}
	if cp.Block.CodeBlock == nil {
		cp.Block.CodeBlock = &mdast.CodeBlockAttrs{}
	}
	cp.Block.CodeBlock.Info = info

	return regenerate(cp)
}

// replaceInlineText swaps a node's children for a single text node holding
// the replacement and regenerates its ID.
func replaceInlineText(n *mdast.Node, text string) (*mdast.Node, error) {
	cp := mdast.Clone(n)
	for _, child := range cp.Children() {
		mdast.RemoveChild(cp, child)
	}
	mdast.AppendChild(cp, mdast.NewText([]byte(text)))

	return regenerate(cp)
}

// regenerate recomputes the node's ID unconditionally. New node instances
// have no cache entry, so going straight through the pipeline is exactly
// what a cache miss would do.
func regenerate(n *mdast.Node) (*mdast.Node, error) {
	canonical, err := mdast.Canonicalize(n)
	if err != nil {
		return nil, err
	}

	n.ID = identity.Derive(canonical, mdast.HintText(n))
	n.Span = mdast.SourceRange{}
	n.File = nil

	return n, nil
}
