// Package routing owns the language server instances and routes LSP traffic
// between them and the attached editor sessions.
package routing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	notifier "github.com/multiedit/lsp-broker/src/broker/gateway/session-client"
	"github.com/multiedit/lsp-broker/src/broker/internal/correlator"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"github.com/multiedit/lsp-broker/src/broker/internal/launcher"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"github.com/multiedit/lsp-broker/src/broker/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "routing"

	_idleLeaseKey     = "broker.idleLeaseSeconds"
	_defaultIdleLease = 300 * time.Second
)

// Controller routes LSP traffic between editor sessions and server instances.
type Controller interface {
	// StartServer starts a language server for the given configuration, or
	// reuses the live instance sharing its project key. The calling session
	// is attached to the server either way.
	StartServer(ctx context.Context, cfg entity.ServerConfig) (*entity.LspStartResult, error)

	// StopServer gracefully shuts down one server instance.
	StopServer(ctx context.Context, serverID uuid.UUID) error

	// StopAll gracefully shuts down every live server instance.
	StopAll(ctx context.Context) error

	// AttachSession registers a session as a viewer of a document and replays
	// the cached diagnostics for it, both on first attach and on reattach.
	AttachSession(ctx context.Context, sessionID uuid.UUID, docURI protocol.DocumentURI) error

	// DetachSession removes a session as a viewer of a document.
	DetachSession(ctx context.Context, sessionID uuid.UUID, docURI protocol.DocumentURI) error

	// EndSession detaches a session from every server and document it was
	// attached to, starting idle leases where it was the last one.
	EndSession(ctx context.Context, sessionID uuid.UUID) error

	// CallServer performs a broker-to-server (C2S) request. On server exit
	// the call resolves immediately with a RequestCancelledError.
	CallServer(ctx context.Context, serverID uuid.UUID, method string, params, result interface{}) error

	// S2CReply resolves a pending server-to-client request with the
	// session's reply.
	S2CReply(ctx context.Context, params *entity.S2CReplyParams) error

	// Broker-owned document lifecycle notifications. Only the shared-state
	// controller calls these; sessions never drive them directly.
	DidOpen(ctx context.Context, docURI protocol.DocumentURI, languageID string, text string, version int32) error
	DidChange(ctx context.Context, docURI protocol.DocumentURI, version int32, changes []protocol.TextDocumentContentChangeEvent) error
	DidClose(ctx context.Context, docURI protocol.DocumentURI) error

	// ServerStatus reports the lifecycle state of one server.
	ServerStatus(ctx context.Context, serverID uuid.UUID) (entity.ServerStatus, error)
}

// Params are inbound parameters to initialize the controller.
type Params struct {
	fx.In

	Sessions       session.Repository
	SessionGateway notifier.Gateway
	Launcher       launcher.Launcher
	Logger         *zap.SugaredLogger
	Stats          tally.Scope
	Config         config.Provider
}

type serverEntry struct {
	inst *entity.ServerInstance

	// callCtx parents every in-flight call toward this server; cancelCalls
	// fires on exit handling so no call goroutine outlives the instance.
	callCtx     context.Context
	cancelCalls context.CancelFunc

	// attached is the set of sessions using this server. When it empties,
	// the idle lease starts; reattachment before expiry cancels it.
	attached    map[uuid.UUID]struct{}
	attachOrder []uuid.UUID
	idleTimer   *time.Timer

	// ready is closed once the handshake completes, so concurrent start
	// requests can reuse the in-flight instance without double-spawning.
	ready    chan struct{}
	startErr error
}

type controller struct {
	sessions  session.Repository
	gateway   notifier.Gateway
	launcher  launcher.Launcher
	logger    *zap.SugaredLogger
	stats     tally.Scope
	idleLease time.Duration

	mu      sync.Mutex
	servers map[uuid.UUID]*serverEntry
	byKey   map[entity.ProjectKey]uuid.UUID

	// diagnostics holds the latest publish per document, retained even with
	// zero attached sessions so reattaching sessions can be replayed.
	diagnostics map[protocol.DocumentURI]*protocol.PublishDiagnosticsParams

	// docViewers tracks which sessions view which documents, for diagnostics
	// fan-out. docServers pins a document to the servers that saw its didOpen.
	docViewers map[protocol.DocumentURI]map[uuid.UUID]struct{}
	docServers map[protocol.DocumentURI]map[uuid.UUID]struct{}

	s2c *correlator.Correlator
	c2s *correlator.Correlator
}

// New creates the routing controller.
func New(p Params) Controller {
	idleLease := _defaultIdleLease
	var idleLeaseSeconds int
	if err := p.Config.Get(_idleLeaseKey).Populate(&idleLeaseSeconds); err == nil && idleLeaseSeconds > 0 {
		idleLease = time.Duration(idleLeaseSeconds) * time.Second
	}

	return &controller{
		sessions:    p.Sessions,
		gateway:     p.SessionGateway,
		launcher:    p.Launcher,
		logger:      p.Logger.With("controller", _nameKey),
		stats:       p.Stats.SubScope(_nameKey),
		idleLease:   idleLease,
		servers:     make(map[uuid.UUID]*serverEntry),
		byKey:       make(map[entity.ProjectKey]uuid.UUID),
		diagnostics: make(map[protocol.DocumentURI]*protocol.PublishDiagnosticsParams),
		docViewers:  make(map[protocol.DocumentURI]map[uuid.UUID]struct{}),
		docServers:  make(map[protocol.DocumentURI]map[uuid.UUID]struct{}),
		s2c:         correlator.New(),
		c2s:         correlator.New(),
	}
}

func (c *controller) AttachSession(ctx context.Context, sessionID uuid.UUID, docURI protocol.DocumentURI) error {
	docURI, err := mapper.NormalizeDocumentURI(docURI)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.docViewers[docURI] == nil {
		c.docViewers[docURI] = make(map[uuid.UUID]struct{})
	}
	c.docViewers[docURI][sessionID] = struct{}{}
	cached := c.diagnostics[docURI]
	c.mu.Unlock()

	if cached == nil {
		return nil
	}

	// Replay the latest diagnostics so the session does not wait for the
	// server to re-publish.
	sCtx := mapper.SessionUUIDToContext(ctx, sessionID)
	if err := c.gateway.PublishDiagnostics(sCtx, cached); err != nil {
		return fmt.Errorf("replaying diagnostics for %q: %w", docURI, err)
	}
	c.stats.Counter("diagnostics_replayed").Inc(1)
	return nil
}

func (c *controller) DetachSession(ctx context.Context, sessionID uuid.UUID, docURI protocol.DocumentURI) error {
	docURI, err := mapper.NormalizeDocumentURI(docURI)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if viewers, ok := c.docViewers[docURI]; ok {
		delete(viewers, sessionID)
		if len(viewers) == 0 {
			delete(c.docViewers, docURI)
		}
	}
	return nil
}

func (c *controller) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	c.mu.Lock()
	for docURI, viewers := range c.docViewers {
		delete(viewers, sessionID)
		if len(viewers) == 0 {
			delete(c.docViewers, docURI)
		}
	}

	for _, entry := range c.servers {
		if _, ok := entry.attached[sessionID]; !ok {
			continue
		}
		c.detachLocked(entry, sessionID)
	}
	c.mu.Unlock()

	return nil
}

// detachLocked removes one session from a server's attachment set and starts
// the idle lease when the set empties. Caller holds c.mu.
func (c *controller) detachLocked(entry *serverEntry, sessionID uuid.UUID) {
	delete(entry.attached, sessionID)
	for i, id := range entry.attachOrder {
		if id == sessionID {
			entry.attachOrder = append(entry.attachOrder[:i], entry.attachOrder[i+1:]...)
			break
		}
	}

	if len(entry.attached) > 0 || entry.inst.Status == entity.ServerStatusExited {
		return
	}

	serverID := entry.inst.ID
	c.logger.Infow("starting idle lease", "serverID", serverID, "lease", c.idleLease)
	entry.idleTimer = time.AfterFunc(c.idleLease, func() {
		c.logger.Infow("idle lease expired, reclaiming server", "serverID", serverID)
		c.stats.Counter("idle_reclaims").Inc(1)
		if err := c.StopServer(context.Background(), serverID); err != nil {
			c.logger.Warnw("reclaiming idle server", "serverID", serverID, "err", err)
		}
	})
}

// attachLocked adds a session to a server's attachment set, cancelling any
// running idle lease. Caller holds c.mu.
func (c *controller) attachLocked(entry *serverEntry, sessionID uuid.UUID) {
	if entry.idleTimer != nil {
		entry.idleTimer.Stop()
		entry.idleTimer = nil
	}
	if _, ok := entry.attached[sessionID]; ok {
		return
	}
	entry.attached[sessionID] = struct{}{}
	entry.attachOrder = append(entry.attachOrder, sessionID)
}

func (c *controller) ServerStatus(ctx context.Context, serverID uuid.UUID) (entity.ServerStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.servers[serverID]
	if !ok {
		return 0, &errors.ServerNotFoundError{ServerID: serverID}
	}
	return entry.inst.Status, nil
}

func (c *controller) updateMetrics() {
	c.mu.Lock()
	live := 0
	for _, entry := range c.servers {
		if entry.inst.Status != entity.ServerStatusExited {
			live++
		}
	}
	c.mu.Unlock()
	c.stats.Gauge("live_servers").Update(float64(live))
}
