package document

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/mdident/pkg/identity"
	"github.com/yaklabco/mdident/pkg/mdast"
)

// ResolveMode controls which identifier forms a lookup accepts.
type ResolveMode uint8

const (
	// ModeStrict accepts only canonical stable identifiers. Anything else
	// fails closed: malformed input is an error, never coerced to a
	// positional lookup.
	ModeStrict ResolveMode = iota

	// ModeCompat accepts a stable identifier or a legacy positional index
	// into document-order blocks. The stable-identifier parse is attempted
	// first; positional interpretation only on structured parse failure.
	ModeCompat
)

// String returns the configuration name of the mode.
func (m ResolveMode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeCompat:
		return "compatibility"
	default:
		return "unknown"
	}
}

// ParseMode converts a configuration string into a ResolveMode.
func ParseMode(s string) (ResolveMode, error) {
	switch s {
	case "strict", "":
		return ModeStrict, nil
	case "compatibility", "compat":
		return ModeCompat, nil
	default:
		return ModeStrict, fmt.Errorf("unknown resolve mode %q (want strict or compatibility)", s)
	}
}

// FindNode resolves an identifier to a node under the given mode.
//
// The boolean reports whether a node was found; a false return with a nil
// error is the normal not-found outcome (well-formed identifier with no
// matching node, or an out-of-range positional index in compatibility
// mode). A non-nil error means the identifier itself was rejected; it
// wraps *identity.MalformedIdentifierError carrying the raw input.
//
// The mode is per-call: callers migrating off positional identifiers can
// run both modes side by side on the same document.
func (d *Document) FindNode(identifier string, mode ResolveMode) (*mdast.Node, bool, error) {
	id, parseErr := identity.Parse(identifier)
	if parseErr == nil {
		node := mdast.FindFirst(d.Root, func(n *mdast.Node) bool {
			return n.ID.Equal(id)
		})
		return node, node != nil, nil
	}

	if mode != ModeCompat {
		return nil, false, parseErr
	}

	// Compatibility fallback is gated on a structured parse failure, not
	// on any other error class.
	var malformed *identity.MalformedIdentifierError
	if !errors.As(parseErr, &malformed) {
		return nil, false, parseErr
	}

	position, err := strconv.Atoi(identifier)
	if err != nil || position < 0 {
		return nil, false, parseErr
	}

	blocks := d.Blocks()
	if position >= len(blocks) {
		// Out-of-range positional lookups are not-found, not failures.
		return nil, false, nil
	}

	return blocks[position], true, nil
}

// Resolve is FindNode using the document's default mode.
func (d *Document) Resolve(identifier string) (*mdast.Node, bool, error) {
	return d.FindNode(identifier, d.mode)
}
