package document

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdident/pkg/identity"
	"github.com/yaklabco/mdident/pkg/mdast"
	"github.com/yaklabco/mdident/pkg/sourcemap"
)

// DriftPolicy controls how identity drift is handled on decode: a persisted
// identifier that no longer matches what canonicalization and hashing
// produce for the same content (typically after a canonicalization
// algorithm change).
type DriftPolicy uint8

const (
	// DriftWarn recomputes the identity, records a warning, and proceeds.
	DriftWarn DriftPolicy = iota

	// DriftFatal fails the decode on the first mismatch.
	DriftFatal
)

// ParseDriftPolicy converts a configuration string into a DriftPolicy.
func ParseDriftPolicy(s string) (DriftPolicy, error) {
	switch s {
	case "warn", "":
		return DriftWarn, nil
	case "fatal":
		return DriftFatal, nil
	default:
		return DriftWarn, fmt.Errorf("unknown drift policy %q (want warn or fatal)", s)
	}
}

// IdentityDriftError reports a persisted identifier that does not match the
// recomputed one.
type IdentityDriftError struct {
	// Persisted is the identifier stored in the serialized form.
	Persisted string

	// Recomputed is the identifier derived from the node's current content.
	Recomputed string

	// Kind is the node kind the mismatch occurred on.
	Kind mdast.NodeKind
}

func (e *IdentityDriftError) Error() string {
	return fmt.Sprintf("identity drift on %s node: persisted %s, recomputed %s",
		e.Kind, e.Persisted, e.Recomputed)
}

// DecodeOptions controls deserialization behavior.
type DecodeOptions struct {
	// Drift selects the identity-drift policy. Defaults to DriftWarn.
	Drift DriftPolicy

	// MaxDepth bounds canonicalization recursion during identity
	// recomputation. Non-positive selects mdast.DefaultMaxDepth.
	MaxDepth int
}

type jsonDocument struct {
	Version      string        `json:"version"`
	Nodes        []jsonNode    `json:"nodes"`
	ViewMappings []jsonMapping `json:"view_mappings,omitempty"`
}

type jsonNode struct {
	Type     string            `json:"type"`
	ID       string            `json:"id"`
	Hint     string            `json:"hint,omitempty"`
	Level    int               `json:"level,omitempty"`
	Text     string            `json:"text,omitempty"`
	Info     string            `json:"info,omitempty"`
	Code     string            `json:"code,omitempty"`
	Ordered  bool              `json:"ordered,omitempty"`
	Start    int               `json:"start,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
	Children []jsonNode        `json:"children,omitempty"`
}

type jsonMapping struct {
	ID        string `json:"id"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// Encode serializes a document: format version, the block-level node tree
// with canonical identifiers, and the view-source mappings.
func Encode(d *Document) ([]byte, error) {
	out := jsonDocument{Version: d.Version}

	for _, child := range d.Root.Children() {
		if !child.IsBlock() && child.Kind != mdast.NodeRaw {
			continue
		}
		out.Nodes = append(out.Nodes, encodeNode(child))
	}

	for _, m := range d.Mappings.Mappings() {
		out.ViewMappings = append(out.ViewMappings, jsonMapping{
			ID:        m.ID,
			StartLine: m.Span.StartLine,
			StartCol:  m.Span.StartCol,
			EndLine:   m.Span.EndLine,
			EndCol:    m.Span.EndCol,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

func encodeNode(n *mdast.Node) jsonNode {
	jn := jsonNode{
		Type: typeName(n.Kind),
		ID:   n.ID.String(),
		Hint: n.ID.Hint(),
		Meta: n.Meta,
	}

	switch n.Kind {
	case mdast.NodeHeading:
		if n.Block != nil {
			jn.Level = n.Block.HeadingLevel
		}
		jn.Text = mdast.InlineText(n)
	case mdast.NodeParagraph:
		jn.Text = mdast.InlineText(n)
	case mdast.NodeCodeBlock:
		if n.Block != nil && n.Block.CodeBlock != nil {
			jn.Info = n.Block.CodeBlock.Info
			jn.Code = string(n.Block.CodeBlock.Code)
		}
	case mdast.NodeList:
		if n.Block != nil && n.Block.List != nil {
			jn.Ordered = n.Block.List.Ordered
			jn.Start = n.Block.List.StartNumber
		}
	case mdast.NodeHTMLBlock:
		if n.Block != nil {
			jn.Text = string(n.Block.HTML)
		}
	case mdast.NodeRaw:
		// Raw structure (e.g., GFM tables) serializes as flattened text,
		// matching how it canonicalizes. Its children are raw too and are
		// already captured by the text, so they are not encoded.
		jn.Text = mdast.InlineText(n)
		return jn
	}

	for _, child := range n.Children() {
		if !child.IsBlock() && child.Kind != mdast.NodeRaw {
			continue
		}
		jn.Children = append(jn.Children, encodeNode(child))
	}

	return jn
}

// Decode rebuilds a Document from serialized form and validates every
// persisted identifier against a freshly computed one.
//
// Under DriftWarn (the default), mismatches are recomputed in place and
// reported as *IdentityDriftError values in the returned slice; the
// document proceeds with the recomputed identities. Under DriftFatal the
// first mismatch aborts. The identity cache always starts empty: a
// transmitted cache is never trusted.
func Decode(data []byte, opts DecodeOptions) (*Document, []*IdentityDriftError, error) {
	var in jsonDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, nil, fmt.Errorf("decode document: %w", err)
	}

	if in.Version == "" {
		return nil, nil, fmt.Errorf("decode document: missing format version")
	}

	root := mdast.NewDocument()
	doc := New(root)
	doc.Version = in.Version
	doc.cache = NewIdentityCache(opts.MaxDepth)

	var drift []*IdentityDriftError

	for i := range in.Nodes {
		node, err := decodeNode(&in.Nodes[i], doc, opts, &drift)
		if err != nil {
			return nil, drift, err
		}
		mdast.AppendChild(root, node)
	}

	// The root's identity depends on its children, so it is computed last.
	rootID, err := doc.cache.GetOrCompute(root)
	if err != nil {
		return nil, drift, err
	}
	root.ID = rootID

	for _, vm := range in.ViewMappings {
		id, err := identity.Parse(vm.ID)
		if err != nil {
			return nil, drift, fmt.Errorf("decode view mapping: %w", err)
		}
		doc.Mappings.Record(id, sourcemap.Span{
			StartLine: vm.StartLine,
			StartCol:  vm.StartCol,
			EndLine:   vm.EndLine,
			EndCol:    vm.EndCol,
		})
	}

	return doc, drift, nil
}

func decodeNode(jn *jsonNode, doc *Document, opts DecodeOptions, drift *[]*IdentityDriftError) (*mdast.Node, error) {
	kind, err := kindForType(jn.Type)
	if err != nil {
		return nil, err
	}

	node := mdast.NewNode(kind)
	if len(jn.Meta) > 0 {
		node.Meta = jn.Meta
	}

	switch kind {
	case mdast.NodeHeading:
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(jn.Level)
		mdast.AppendChild(node, mdast.NewText([]byte(jn.Text)))
	case mdast.NodeParagraph:
		mdast.AppendChild(node, mdast.NewText([]byte(jn.Text)))
	case mdast.NodeCodeBlock:
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
			Info: jn.Info,
			Code: []byte(jn.Code),
		})
	case mdast.NodeList:
		node.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{
			Ordered:     jn.Ordered,
			StartNumber: jn.Start,
		})
	case mdast.NodeHTMLBlock:
		node.Block = mdast.NewBlockAttrs().WithHTML([]byte(jn.Text))
	case mdast.NodeRaw:
		if jn.Text != "" {
			mdast.AppendChild(node, mdast.NewText([]byte(jn.Text)))
		}
	}

	for i := range jn.Children {
		child, err := decodeNode(&jn.Children[i], doc, opts, drift)
		if err != nil {
			return nil, err
		}
		mdast.AppendChild(node, child)
	}

	recomputed, err := doc.cache.GetOrCompute(node)
	if err != nil {
		return nil, err
	}
	node.ID = recomputed

	if jn.ID != "" && jn.ID != recomputed.String() {
		driftErr := &IdentityDriftError{
			Persisted:  jn.ID,
			Recomputed: recomputed.String(),
			Kind:       kind,
		}
		if opts.Drift == DriftFatal {
			return nil, driftErr
		}
		*drift = append(*drift, driftErr)
	}

	return node, nil
}

// typeName maps a node kind to its serialized type string.
func typeName(k mdast.NodeKind) string {
	switch k {
	case mdast.NodeParagraph:
		return "paragraph"
	case mdast.NodeHeading:
		return "heading"
	case mdast.NodeList:
		return "list"
	case mdast.NodeListItem:
		return "list_item"
	case mdast.NodeBlockquote:
		return "blockquote"
	case mdast.NodeCodeBlock:
		return "code_block"
	case mdast.NodeThematicBreak:
		return "thematic_break"
	case mdast.NodeHTMLBlock:
		return "html_block"
	default:
		return "raw"
	}
}

func kindForType(t string) (mdast.NodeKind, error) {
	switch t {
	case "paragraph":
		return mdast.NodeParagraph, nil
	case "heading":
		return mdast.NodeHeading, nil
	case "list":
		return mdast.NodeList, nil
	case "list_item":
		return mdast.NodeListItem, nil
	case "blockquote":
		return mdast.NodeBlockquote, nil
	case "code_block":
		return mdast.NodeCodeBlock, nil
	case "thematic_break":
		return mdast.NodeThematicBreak, nil
	case "html_block":
		return mdast.NodeHTMLBlock, nil
	case "raw":
		return mdast.NodeRaw, nil
	default:
		return 0, fmt.Errorf("decode document: unknown node type %q", t)
	}
}
