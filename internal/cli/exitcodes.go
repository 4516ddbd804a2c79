package cli

import "errors"

// Exit codes returned by the mdident binary.
const (
	// ExitOK means the command succeeded.
	ExitOK = 0

	// ExitError means the command failed (bad input, I/O error, fatal drift).
	ExitError = 1

	// ExitNotFound means a lookup completed but matched no node.
	ExitNotFound = 2
)

// ErrNodeNotFound signals that a resolve completed without a match.
// It carries no message of its own; the command prints the outcome and the
// error only selects the exit code.
var ErrNodeNotFound = errors.New("node not found")

// ErrDriftFound signals that verify detected identity drift under --strict.
var ErrDriftFound = errors.New("identity drift found")

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNodeNotFound):
		return ExitNotFound
	default:
		return ExitError
	}
}
