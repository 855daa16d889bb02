package entity

import (
	"encoding/json"

	"github.com/gofrs/uuid"
	"go.lsp.dev/protocol"
)

// Custom JSON-RPC methods served to editor sessions.
const (
	// MethodLspStart requests that a language server matching the given
	// configuration be started, or reused when one already exists.
	MethodLspStart = "broker/lspStart"
	// MethodSharedOpen registers the session as a viewer of a document.
	MethodSharedOpen = "broker/sharedOpen"
	// MethodSharedClose removes the session as a viewer of a document.
	MethodSharedClose = "broker/sharedClose"
	// MethodSharedFocus transfers document ownership to the session.
	MethodSharedFocus = "broker/sharedFocus"
	// MethodSharedEdit submits deltas for a document owned by the session.
	MethodSharedEdit = "broker/sharedEdit"
	// MethodSharedResync aligns the session's local text with the broker's copy.
	MethodSharedResync = "broker/sharedResync"
	// MethodS2CReply carries a session's reply to a server-initiated request.
	MethodS2CReply = "broker/s2cReply"
	// MethodRequestFullShutdown directs the daemon to shut down on the next 'exit'.
	MethodRequestFullShutdown = "broker/requestFullShutdown"
)

// Notifications pushed to editor sessions.
const (
	// MethodOwnershipChanged announces a new document owner to all viewers.
	MethodOwnershipChanged = "broker/ownershipChanged"
	// MethodUnlocked announces that an idle document lock was released.
	MethodUnlocked = "broker/unlocked"
	// MethodSharedDelta delivers an accepted delta to follower sessions.
	MethodSharedDelta = "broker/sharedDelta"
	// MethodServerRequest delivers a server-initiated request to a session.
	MethodServerRequest = "broker/serverRequest"
	// MethodSessionEnded informs a session that the broker has dropped it.
	MethodSessionEnded = "broker/sessionEnded"
)

// LspStartParams are the parameters of a broker/lspStart request.
type LspStartParams struct {
	Config ServerConfig `json:"config"`
}

// LspStartResult is the reply to a broker/lspStart request.
type LspStartResult struct {
	ServerID uuid.UUID `json:"serverId"`
	Reused   bool      `json:"reused"`
}

// SharedOpenParams are the parameters of a broker/sharedOpen request.
type SharedOpenParams struct {
	URI        protocol.DocumentURI `json:"uri"`
	LanguageID string               `json:"languageId"`
	Text       string               `json:"text"`
}

// SharedCloseParams are the parameters of a broker/sharedClose request.
type SharedCloseParams struct {
	URI protocol.DocumentURI `json:"uri"`
}

// SharedFocusParams are the parameters of a broker/sharedFocus request.
type SharedFocusParams struct {
	URI protocol.DocumentURI `json:"uri"`
}

// FocusResult is the reply to a broker/sharedFocus request.
type FocusResult struct {
	Epoch uint64 `json:"epoch"`
}

// SharedEditParams are the parameters of a broker/sharedEdit request.
type SharedEditParams struct {
	URI     protocol.DocumentURI                      `json:"uri"`
	Epoch   uint64                                    `json:"epoch"`
	Changes []protocol.TextDocumentContentChangeEvent `json:"changes"`
}

// EditAck is the reply to an accepted broker/sharedEdit request.
type EditAck struct {
	Epoch   uint64 `json:"epoch"`
	Version int32  `json:"version"`
}

// SharedResyncParams carry the client's fingerprint of its local text.
type SharedResyncParams struct {
	URI      protocol.DocumentURI `json:"uri"`
	Hash64   uint64               `json:"hash64"`
	LenChars int                  `json:"lenChars"`
}

// ResyncResult is the reply to a broker/sharedResync request. Text is nil
// when the client fingerprint already matches the authoritative copy, in
// which case applying the snapshot is a no-op.
type ResyncResult struct {
	Epoch   uint64  `json:"epoch"`
	Version int32   `json:"version"`
	Text    *string `json:"text,omitempty"`
}

// OwnershipChangedEvent is broadcast to every viewer on a focus transfer.
type OwnershipChangedEvent struct {
	URI   protocol.DocumentURI `json:"uri"`
	Owner uuid.UUID            `json:"owner"`
	Epoch uint64               `json:"epoch"`
}

// SharedDeltaEvent delivers an accepted delta to every follower session,
// which must apply it locally without originating deltas of its own.
type SharedDeltaEvent struct {
	URI     protocol.DocumentURI                      `json:"uri"`
	Epoch   uint64                                    `json:"epoch"`
	Version int32                                     `json:"version"`
	Changes []protocol.TextDocumentContentChangeEvent `json:"changes"`
}

// UnlockedEvent is broadcast when an idle document lock is released.
type UnlockedEvent struct {
	URI   protocol.DocumentURI `json:"uri"`
	Epoch uint64               `json:"epoch"`
}

// ServerRequestEvent delivers a server-initiated (S2C) request to a session.
// The session answers with a broker/s2cReply request referencing RequestID.
type ServerRequestEvent struct {
	ServerID  uuid.UUID       `json:"serverId"`
	RequestID string          `json:"requestId"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// S2CReplyParams carry a session's reply to a server-initiated request.
type S2CReplyParams struct {
	ServerID  uuid.UUID       `json:"serverId"`
	RequestID string          `json:"requestId"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}
