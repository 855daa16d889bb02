package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
)

// RequestCancelledError resolves a pending request when its server exits
// before replying. Recoverable by retrying against a fresh server instance.
type RequestCancelledError struct {
	ServerID  uuid.UUID
	RequestID string
}

// Error is an implementation of the error interface.
func (n *RequestCancelledError) Error() string {
	return fmt.Sprintf("request %q cancelled: server %q exited", n.RequestID, n.ServerID)
}

// IsRequestCancelled reports whether RequestCancelledError is part of the error chain.
func IsRequestCancelled(e error) bool {
	var rc *RequestCancelledError
	return stderr.As(e, &rc)
}

// SpawnError indicates that launching a language server process failed.
type SpawnError struct {
	Command string
	Err     error
}

// Error is an implementation of the error interface.
func (n *SpawnError) Error() string {
	return fmt.Sprintf("spawning %q: %v", n.Command, n.Err)
}

// Unwrap supports errors.Is/As against the underlying cause.
func (n *SpawnError) Unwrap() error {
	return n.Err
}

// WorkspaceRestrictionError indicates that a server configuration was denied
// by policy for the requesting session's workspace.
type WorkspaceRestrictionError struct {
	WorkspaceRoot string
	Command       string
}

// Error is an implementation of the error interface.
func (n *WorkspaceRestrictionError) Error() string {
	return fmt.Sprintf("command %q is not permitted for workspace %q", n.Command, n.WorkspaceRoot)
}
