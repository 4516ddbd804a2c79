package identity

import "fmt"

// MalformedIdentifierError reports an input string that is not a valid
// canonical NodeID. The raw input is carried for diagnostics and must reach
// the caller rather than being swallowed. The compatibility resolver in
// pkg/document uses this error type to decide whether a positional fallback
// may be attempted.
type MalformedIdentifierError struct {
	// Raw is the offending input string, unmodified.
	Raw string

	// Reason describes why the input was rejected.
	Reason string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed node identifier %q: %s", e.Raw, e.Reason)
}
