// Package notifier sends outbound events to attached editor sessions.
// All calls should include a context carrying a session UUID, which is used
// to route the event to the correct session's connection.
package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const _errSendToSession = "sending notification to session: %w"

// SessionLostHandler reacts to a session whose connection stopped accepting
// deliveries. Handlers are invoked on their own goroutine, never inline with
// the failed send, so a stuck downstream cannot deadlock cleanup.
type SessionLostHandler func(id uuid.UUID)

// Gateway is used to send outbound notifications to editor sessions.
type Gateway interface {
	// RegisterClient registers a new session connection with the gateway.
	RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error
	// DeregisterClient removes a session from the gateway. Idempotent.
	DeregisterClient(ctx context.Context, id uuid.UUID) error
	// OnSessionLost registers a handler for delivery failures. Must be called
	// before serving traffic; part of the daemon's two-phase wiring.
	OnSessionLost(h SessionLostHandler)

	// Events pushed to sessions.
	OwnershipChanged(ctx context.Context, ev *entity.OwnershipChangedEvent) error
	Unlocked(ctx context.Context, ev *entity.UnlockedEvent) error
	SharedDelta(ctx context.Context, ev *entity.SharedDeltaEvent) error
	ServerRequest(ctx context.Context, ev *entity.ServerRequestEvent) error
	PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
	SessionEnded(ctx context.Context) error
}

type gateway struct {
	connections map[uuid.UUID]jsonrpc2.Conn
	clientsMu   sync.Mutex
	onLost      []SessionLostHandler
	logger      *zap.SugaredLogger
}

// New returns a Gateway for sending session notifications.
func New(logger *zap.SugaredLogger) Gateway {
	return &gateway{
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      logger.With("component", "session-client"),
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.connections[id] = *conn
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.connections, id)
	return nil
}

func (g *gateway) OnSessionLost(h SessionLostHandler) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()
	g.onLost = append(g.onLost, h)
}

func (g *gateway) OwnershipChanged(ctx context.Context, ev *entity.OwnershipChangedEvent) error {
	return g.notify(ctx, entity.MethodOwnershipChanged, ev)
}

func (g *gateway) Unlocked(ctx context.Context, ev *entity.UnlockedEvent) error {
	return g.notify(ctx, entity.MethodUnlocked, ev)
}

func (g *gateway) SharedDelta(ctx context.Context, ev *entity.SharedDeltaEvent) error {
	return g.notify(ctx, entity.MethodSharedDelta, ev)
}

func (g *gateway) ServerRequest(ctx context.Context, ev *entity.ServerRequestEvent) error {
	return g.notify(ctx, entity.MethodServerRequest, ev)
}

func (g *gateway) PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error {
	return g.notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, params)
}

func (g *gateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	return g.notify(ctx, protocol.MethodWindowLogMessage, params)
}

func (g *gateway) SessionEnded(ctx context.Context) error {
	return g.notify(ctx, entity.MethodSessionEnded, nil)
}

func (g *gateway) notify(ctx context.Context, method string, params interface{}) error {
	id, conn, err := g.getConn(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToSession, err)
	}

	if err := conn.Notify(ctx, method, params); err != nil {
		g.markLost(id)
		return fmt.Errorf(_errSendToSession, err)
	}
	return nil
}

func (g *gateway) getConn(ctx context.Context) (uuid.UUID, jsonrpc2.Conn, error) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}

	conn, ok := g.connections[id]
	if !ok {
		return uuid.Nil, nil, fmt.Errorf("session with id %q not found", id)
	}
	return id, conn, nil
}

// markLost removes the session and fans out SessionLost exactly once. The
// registry entry is the once-guard: a second failed send finds no entry and
// does nothing.
func (g *gateway) markLost(id uuid.UUID) {
	g.clientsMu.Lock()
	_, ok := g.connections[id]
	if ok {
		delete(g.connections, id)
	}
	handlers := g.onLost
	g.clientsMu.Unlock()

	if !ok {
		return
	}

	g.logger.Infow("session lost", "session", id)
	for _, h := range handlers {
		go h(id)
	}
}
