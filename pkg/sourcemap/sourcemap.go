// Package sourcemap records provenance: which span of the original source
// text a node identity came from. Mappings are established once at parse
// time, at block granularity, and never updated by later edits. They are
// provenance, not live tracking.
package sourcemap

import "github.com/yaklabco/mdident/pkg/identity"

// Span is a range in the original input text.
// Lines are 1-based; columns are 0-based byte offsets within their line.
type Span struct {
	// StartOffset is the byte index where the span begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the span ends (exclusive).
	EndOffset int

	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// IsZero reports whether the span carries no position information.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Mapping associates a node identity with its source span.
type Mapping struct {
	// ID is the canonical textual form of the node's identity.
	ID string

	Span Span
}

// Index is the ordered collection of view-source mappings owned by a
// Document. Lookups are by full canonical NodeID form; absence is a normal
// outcome, reported as a false second return, never an error.
//
// When a document contains two blocks with identical content (and therefore
// identical identity), the ordered list keeps both entries and lookups
// resolve to the first.
type Index struct {
	order []Mapping
	byID  map[string]Span
}

// NewIndex creates an empty mapping index.
func NewIndex() *Index {
	return &Index{byID: make(map[string]Span)}
}

// Record appends a mapping for the given identity. Called once per
// block-level node during parsing.
func (ix *Index) Record(id identity.NodeID, span Span) {
	key := id.String()
	ix.order = append(ix.order, Mapping{ID: key, Span: span})
	if _, exists := ix.byID[key]; !exists {
		ix.byID[key] = span
	}
}

// Find returns the span recorded for the given identity.
// The second return is false when no mapping exists, which is expected for
// nodes created by edits after parsing.
func (ix *Index) Find(id identity.NodeID) (Span, bool) {
	span, ok := ix.byID[id.String()]
	return span, ok
}

// Len returns the number of recorded mappings.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Mappings returns the mappings in recording (document) order.
// Do not mutate the returned slice.
func (ix *Index) Mappings() []Mapping {
	return ix.order
}
