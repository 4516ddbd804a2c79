package mdast

// NewNode creates a new node of the specified kind.
// The node has no parent, children, span, or identity.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text node holding the given content.
func NewText(text []byte) *Node {
	node := NewNode(NodeText)
	node.Inline = NewInlineAttrs().WithText(text)
	return node
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// PrependChild prepends a child node to a parent.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = nil
	child.Next = parent.FirstChild

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}

	parent.FirstChild = child
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ReplaceChild replaces oldChild with newChild in the tree.
func ReplaceChild(parent, oldChild, newChild *Node) {
	if parent == nil || oldChild == nil || newChild == nil {
		return
	}

	if oldChild.Parent != parent {
		return
	}

	// Remove newChild from its current parent if any.
	if newChild.Parent != nil {
		RemoveChild(newChild.Parent, newChild)
	}

	newChild.Parent = parent
	newChild.Prev = oldChild.Prev
	newChild.Next = oldChild.Next

	if oldChild.Prev != nil {
		oldChild.Prev.Next = newChild
	} else {
		parent.FirstChild = newChild
	}

	if oldChild.Next != nil {
		oldChild.Next.Prev = newChild
	} else {
		parent.LastChild = newChild
	}

	oldChild.Parent = nil
	oldChild.Prev = nil
	oldChild.Next = nil
}

// Clone returns a deep copy of the subtree rooted at n.
// The copy is detached (nil Parent and siblings at the root), carries the
// same kind, attrs, metadata, span, and ID, but no File back-reference.
// Clone is the basis of value-style editing in pkg/edit: operate on the
// copy, leave the original untouched.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}

	cp := &Node{
		Kind:   n.Kind,
		ID:     n.ID,
		Span:   n.Span,
		Block:  n.Block.clone(),
		Inline: n.Inline.clone(),
	}

	if n.Meta != nil {
		cp.Meta = make(map[string]string, len(n.Meta))
		for k, v := range n.Meta {
			cp.Meta[k] = v
		}
	}
	if n.Ext != nil {
		cp.Ext = make(map[string]any, len(n.Ext))
		for k, v := range n.Ext {
			cp.Ext[k] = v
		}
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		AppendChild(cp, Clone(child))
	}

	return cp
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *FileSnapshot) {
	if node == nil {
		return
	}

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(node, func(child *Node) error {
		child.File = file
		return nil
	})
}
