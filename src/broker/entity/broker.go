// Package entity contains the domain types shared across the broker daemon.
package entity

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type keyType string

// SessionContextKey indicates the key used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// Session represents a single attached editor session.
type Session struct {
	UUID             uuid.UUID                  `json:"uuid" zap:"uuid"`
	InitializeParams *protocol.InitializeParams `json:"-" zap:"-"`
	Conn             *jsonrpc2.Conn             `json:"-" zap:"-"`
	WorkspaceRoot    string                     `json:"workspaceRoot" zap:"workspaceRoot"`

	// Servers holds the ids of language servers this session is attached to.
	// The set drives cleanup fan-out when the session ends.
	Servers map[uuid.UUID]struct{} `json:"-" zap:"-"`
}

// AttachServer records that the session is attached to the given server.
func (s *Session) AttachServer(id uuid.UUID) {
	if s.Servers == nil {
		s.Servers = make(map[uuid.UUID]struct{})
	}
	s.Servers[id] = struct{}{}
}

// DetachServer removes a server from the session's attachment set.
func (s *Session) DetachServer(id uuid.UUID) {
	delete(s.Servers, id)
}
