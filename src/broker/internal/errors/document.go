package errors

import (
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/protocol"
)

// DocumentNotFoundError indicates that a document is not found.
type DocumentNotFoundError struct {
	URI protocol.DocumentURI
}

// Error is an implementation of the error interface.
func (n *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document %q not found", n.URI)
}

// NotPreferredOwnerError indicates that a delta was rejected because the
// submitting session is not the document's current owner. Recoverable by
// requesting focus and resyncing before retrying.
type NotPreferredOwnerError struct {
	URI     protocol.DocumentURI
	Session uuid.UUID
	Owner   uuid.UUID
	Epoch   uint64
}

// Error is an implementation of the error interface.
func (n *NotPreferredOwnerError) Error() string {
	return fmt.Sprintf("session %q is not the owner of %q at epoch %d (owner is %q)", n.Session, n.URI, n.Epoch, n.Owner)
}

// ResyncRequiredError indicates that a delta arrived before the new owner
// completed its resync, and was rejected rather than silently applied.
type ResyncRequiredError struct {
	URI   protocol.DocumentURI
	Epoch uint64
}

// Error is an implementation of the error interface.
func (n *ResyncRequiredError) Error() string {
	return fmt.Sprintf("edits for %q rejected: resync required for epoch %d", n.URI, n.Epoch)
}

// StaleEpochError indicates that a delta referenced an epoch older than the
// document's current one.
type StaleEpochError struct {
	URI      protocol.DocumentURI
	Received uint64
	Current  uint64
}

// Error is an implementation of the error interface.
func (n *StaleEpochError) Error() string {
	return fmt.Sprintf("stale epoch %d for %q, current epoch is %d", n.Received, n.URI, n.Current)
}

// InvalidURIError indicates that a request carried a URI that cannot be normalized.
type InvalidURIError struct {
	Raw string
}

// Error is an implementation of the error interface.
func (n *InvalidURIError) Error() string {
	return fmt.Sprintf("invalid document URI %q", n.Raw)
}
