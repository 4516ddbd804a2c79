package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	// Presentation only: changing it never changes the node's identity.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// HTML is the literal source text of NodeHTMLBlock. Kept on the node
	// so identity never depends on a file back-reference.
	HTML []byte
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// BulletMarker is the bullet character used ("-", "+", "*").
	BulletMarker string

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Delimiter is the delimiter for ordered lists ("." or ")").
	Delimiter string

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// FenceChar is the fence character ('`' or '~').
	FenceChar byte

	// FenceLength is the number of fence characters.
	FenceLength int

	// Info is the info string (language identifier, etc.).
	Info string

	// Indented is true for indented code blocks (vs fenced).
	Indented bool

	// Code is the raw source text of the block, excluding fences.
	Code []byte
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText and NodeCodeSpan.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// EmphasisLevel indicates emphasis strength (1 for emphasis, 2 for strong).
	EmphasisLevel int
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// Autolink is true for autolinks: <https://example.com>.
	Autolink bool
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCodeBlock sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithHTML sets the HTML block content and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHTML(html []byte) *BlockAttrs {
	a.HTML = html
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithEmphasisLevel sets the emphasis level and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithEmphasisLevel(level int) *InlineAttrs {
	a.EmphasisLevel = level
	return a
}

// clone returns a deep copy of the BlockAttrs.
func (a *BlockAttrs) clone() *BlockAttrs {
	if a == nil {
		return nil
	}
	cp := *a
	cp.HTML = append([]byte(nil), a.HTML...)
	if a.List != nil {
		listCopy := *a.List
		cp.List = &listCopy
	}
	if a.CodeBlock != nil {
		cbCopy := *a.CodeBlock
		cbCopy.Code = append([]byte(nil), a.CodeBlock.Code...)
		cp.CodeBlock = &cbCopy
	}
	return &cp
}

// clone returns a deep copy of the InlineAttrs.
func (a *InlineAttrs) clone() *InlineAttrs {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Text = append([]byte(nil), a.Text...)
	if a.Link != nil {
		linkCopy := *a.Link
		cp.Link = &linkCopy
	}
	return &cp
}
