// Package correlator provides a pending-request table that matches outbound
// request ids to response slots, with bulk cancellation per server.
package correlator

import (
	"sync"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
)

// Result is the resolution of a pending request.
type Result struct {
	Payload []byte
	Err     error
}

type pending struct {
	serverID uuid.UUID
	done     chan Result
}

// Correlator maps outbound request ids to pending response slots. One
// instance is used per request direction; entries are keyed by request id
// and carry the originating server id for bulk cancellation.
type Correlator struct {
	mu      sync.Mutex
	pending map[string]*pending
}

// New returns an empty correlator.
func New() *Correlator {
	return &Correlator{
		pending: make(map[string]*pending),
	}
}

// Register inserts a pending entry for the given request id and returns the
// channel its resolution will be delivered on. The entry is observable via
// Pending before Register returns, so it is safe to hand the request bytes
// to the transport immediately afterwards.
func (c *Correlator) Register(serverID uuid.UUID, requestID string) <-chan Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := &pending{
		serverID: serverID,
		done:     make(chan Result, 1),
	}
	c.pending[requestID] = p
	return p.done
}

// Resolve delivers a result to the pending entry for the given request id
// and removes it. Returns false if no entry exists, which happens when the
// request was already cancelled or never registered.
func (c *Correlator) Resolve(requestID string, res Result) bool {
	c.mu.Lock()
	p, ok := c.pending[requestID]
	if ok {
		delete(c.pending, requestID)
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	p.done <- res
	return true
}

// Pending reports whether a request id has an unresolved entry.
func (c *Correlator) Pending(requestID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[requestID]
	return ok
}

// Count returns the number of unresolved entries.
func (c *Correlator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// CancelServer resolves every pending request correlated to the given server
// with a RequestCancelledError and returns how many were cancelled. Callers
// invoke this synchronously from server-exit handling so that no request is
// left to time out.
func (c *Correlator) CancelServer(serverID uuid.UUID) int {
	c.mu.Lock()
	cancelled := make(map[string]*pending)
	for id, p := range c.pending {
		if p.serverID == serverID {
			cancelled[id] = p
			delete(c.pending, id)
		}
	}
	c.mu.Unlock()

	for id, p := range cancelled {
		p.done <- Result{Err: &errors.RequestCancelledError{ServerID: serverID, RequestID: id}}
	}
	return len(cancelled)
}
