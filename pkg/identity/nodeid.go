// Package identity defines the stable, content-derived node identifier used
// throughout mdident. A NodeID is derived by hashing a node's canonical byte
// form (see pkg/mdast.Canonicalize) and carries a human-readable hint that is
// excluded from identity equality.
package identity

import (
	"crypto/sha256"
	"encoding/base32"
	"strings"
)

const (
	// EncodedLen is the length of the canonical textual form of a NodeID.
	EncodedLen = 16

	// ShortLen is the length of the short display form.
	ShortLen = 8

	// MaxHintLen is the maximum length of a hint in runes.
	MaxHintLen = 32

	// FallbackHint is attached to nodes whose kind carries no text content
	// (e.g., thematic breaks) and to nodes whose text slugifies to nothing.
	FallbackHint = "untitled"
)

// alphabet is a lowercase base32 alphabet. Lowercase keeps identifiers
// readable next to hints and safe in case-insensitive filesystems and URLs.
const alphabet = "abcdefghijklmnopqrstuvwxyz234567"

//nolint:gochecknoglobals // Fixed encoding shared by Derive and Parse
var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// NodeID is a stable, content-derived node identifier.
//
// The canonical textual form (String) is exactly EncodedLen characters of
// lowercase base32, derived from a SHA-256 hash of the node's canonical
// bytes. The hint is a slugified excerpt of the node's original text,
// attached for debugging only: two NodeIDs are equal if and only if their
// canonical forms are equal, regardless of hint.
//
// Only the canonical string form is stable across runs. Never persist or
// compare the in-memory struct directly; use String and Equal.
type NodeID struct {
	hash string
	hint string
}

// Derive computes a NodeID from canonical bytes. The canonical bytes must
// already embed the node's kind discriminant (pkg/mdast.Canonicalize does
// this), so two different kinds with coincidentally identical text never
// collide. The original, un-normalized text supplies the hint.
func Derive(canonical []byte, original string) NodeID {
	sum := sha256.Sum256(canonical)
	encoded := encoding.EncodeToString(sum[:])

	return NodeID{
		hash: encoded[:EncodedLen],
		hint: Slug(original),
	}
}

// String returns the canonical textual form: EncodedLen lowercase base32
// characters. Parsing this string with Parse and re-serializing yields the
// identical string.
func (id NodeID) String() string {
	return id.hash
}

// Short returns the first ShortLen characters of the canonical form for
// human-facing output. The short form is lossy and must never be used as a
// lookup key.
func (id NodeID) Short() string {
	if len(id.hash) < ShortLen {
		return id.hash
	}
	return id.hash[:ShortLen]
}

// Hint returns the human-readable hint. Hints are derived, never supplied,
// and play no part in equality.
func (id NodeID) Hint() string {
	return id.hint
}

// DebugString returns the canonical form joined with the hint, e.g.
// "k2j4xqz7mnp3a5bc-hello-world". Intended for logs and diagnostics.
func (id NodeID) DebugString() string {
	if id.hint == "" {
		return id.hash
	}
	return id.hash + "-" + id.hint
}

// Equal reports whether two NodeIDs refer to the same identity. Equality is
// defined over the full canonical form; hints are ignored.
func (id NodeID) Equal(other NodeID) bool {
	return id.hash == other.hash
}

// IsZero reports whether the NodeID has not been derived or parsed.
func (id NodeID) IsZero() bool {
	return id.hash == ""
}

// Parse converts a canonical textual form back into a NodeID. It accepts
// either the bare EncodedLen-character form or the DebugString form with a
// trailing "-hint" suffix (the hint is preserved but has no effect on
// equality). Any other input yields a *MalformedIdentifierError.
func Parse(input string) (NodeID, error) {
	if input == "" {
		return NodeID{}, &MalformedIdentifierError{Raw: input, Reason: "empty identifier"}
	}

	hash := input
	hint := ""

	if idx := strings.IndexByte(input, '-'); idx >= 0 {
		hash = input[:idx]
		hint = input[idx+1:]
	}

	if len(hash) != EncodedLen {
		return NodeID{}, &MalformedIdentifierError{
			Raw:    input,
			Reason: "identifier must be 16 base32 characters",
		}
	}

	for i := 0; i < len(hash); i++ {
		if strings.IndexByte(alphabet, hash[i]) < 0 {
			return NodeID{}, &MalformedIdentifierError{
				Raw:    input,
				Reason: "invalid base32 character",
			}
		}
	}

	return NodeID{hash: hash, hint: hint}, nil
}
