// Package broker implements the daemon's front-line business logic. Each
// session request is dispatched here and plumbed to the routing or
// shared-state handle; session lifecycle (subscribe, unregister, loss) is
// coordinated from this controller.
package broker

import (
	"context"
	"strings"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/controller/routing"
	"github.com/multiedit/lsp-broker/src/broker/controller/sharedstate"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	notifier "github.com/multiedit/lsp-broker/src/broker/gateway/session-client"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"github.com/multiedit/lsp-broker/src/broker/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "broker"

// Controller orchestrates the business logic for each session request.
type Controller interface {
	// Session lifecycle.
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, id uuid.UUID) error
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error
	RequestFullShutdown(ctx context.Context) error

	// Language server management.
	LspStart(ctx context.Context, params *entity.LspStartParams) (*entity.LspStartResult, error)

	// Shared document operations.
	SharedOpen(ctx context.Context, params *entity.SharedOpenParams) error
	SharedClose(ctx context.Context, params *entity.SharedCloseParams) error
	SharedFocus(ctx context.Context, params *entity.SharedFocusParams) (*entity.FocusResult, error)
	SharedEdit(ctx context.Context, params *entity.SharedEditParams) (*entity.EditAck, error)
	SharedResync(ctx context.Context, params *entity.SharedResyncParams) (*entity.ResyncResult, error)
	S2CReply(ctx context.Context, params *entity.S2CReplyParams) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner  fx.Shutdowner
	Sessions    session.Repository
	Gateway     notifier.Gateway
	Routing     routing.Controller
	SharedState sharedstate.Controller
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
}

type controller struct {
	shutdowner  fx.Shutdowner
	sessions    session.Repository
	gateway     notifier.Gateway
	routing     routing.Controller
	sharedState sharedstate.Controller
	logger      *zap.SugaredLogger
	stats       tally.Scope

	mu           sync.Mutex
	fullShutdown bool
}

// New creates the broker controller and completes the two-phase wiring by
// registering the SessionLost reaction on the gateway handle.
func New(p Params) Controller {
	c := &controller{
		shutdowner:  p.Shutdowner,
		sessions:    p.Sessions,
		gateway:     p.Gateway,
		routing:     p.Routing,
		sharedState: p.SharedState,
		logger:      p.Logger.With("controller", _nameKey),
		stats:       p.Stats.SubScope(_nameKey),
	}

	// The gateway invokes this on its own goroutine, so cleanup of a lost
	// session can never deadlock against an in-progress send.
	p.Gateway.OnSessionLost(func(id uuid.UUID) {
		if err := c.EndSession(context.Background(), id); err != nil {
			c.logger.Warnw("cleaning up lost session", "session", id, "err", err)
		}
	})

	return c
}

// InitSession registers a new session connection and assigns it a UUID.
func (c *controller) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	s := mapper.UUIDToSession(id, conn)
	if err := c.sessions.Set(ctx, s); err != nil {
		return uuid.Nil, err
	}
	if err := c.gateway.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, err
	}
	c.stats.Counter("sessions_started").Inc(1)
	return id, nil
}

// EndSession releases everything a session held. Idempotent; also the
// SessionLost reaction, so it must tolerate partially cleaned state.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	c.gateway.DeregisterClient(ctx, id)

	if err := c.sharedState.EndSession(ctx, id); err != nil {
		c.logger.Warnw("ending session in shared state", "session", id, "err", err)
	}
	if err := c.routing.EndSession(ctx, id); err != nil {
		c.logger.Warnw("ending session in routing", "session", id, "err", err)
	}

	if err := c.sessions.Delete(ctx, id); err != nil {
		return err
	}
	c.stats.Counter("sessions_ended").Inc(1)
	return nil
}

func (c *controller) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.InitializeParams = params
	s.WorkspaceRoot = workspaceRoot(params)
	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}

	return &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{Name: "lsp-broker"},
	}, nil
}

func (c *controller) Shutdown(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}
	return c.EndSession(ctx, s.UUID)
}

func (c *controller) Exit(ctx context.Context) error {
	c.mu.Lock()
	full := c.fullShutdown
	c.mu.Unlock()

	if !full {
		return nil
	}

	c.logger.Info("full shutdown requested, stopping daemon")

	// Tell every remaining session the daemon is going away underneath it.
	if sessions, err := c.sessions.GetAll(ctx); err == nil {
		for _, s := range sessions {
			sCtx := mapper.SessionUUIDToContext(ctx, s.UUID)
			if err := c.gateway.SessionEnded(sCtx); err != nil {
				c.logger.Debugw("notifying session of shutdown", "session", s.UUID, "err", err)
			}
		}
	}

	if err := c.routing.StopAll(ctx); err != nil {
		c.logger.Warnw("stopping servers during shutdown", "err", err)
	}
	return c.shutdowner.Shutdown()
}

// RequestFullShutdown arms a daemon-wide shutdown on the next 'exit'.
func (c *controller) RequestFullShutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fullShutdown = true
	return nil
}

func (c *controller) LspStart(ctx context.Context, params *entity.LspStartParams) (*entity.LspStartResult, error) {
	return c.routing.StartServer(ctx, params.Config)
}

func (c *controller) SharedOpen(ctx context.Context, params *entity.SharedOpenParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	if err := c.sharedState.Open(ctx, params); err != nil {
		return err
	}
	// Viewer registration in routing replays any cached diagnostics, both on
	// first attach and on reconnection after a session loss.
	return c.routing.AttachSession(ctx, s.UUID, params.URI)
}

func (c *controller) SharedClose(ctx context.Context, params *entity.SharedCloseParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	if err := c.routing.DetachSession(ctx, s.UUID, params.URI); err != nil {
		c.logger.Warnw("detaching session from document", "uri", params.URI, "err", err)
	}
	return c.sharedState.Close(ctx, params)
}

func (c *controller) SharedFocus(ctx context.Context, params *entity.SharedFocusParams) (*entity.FocusResult, error) {
	return c.sharedState.Focus(ctx, params)
}

func (c *controller) SharedEdit(ctx context.Context, params *entity.SharedEditParams) (*entity.EditAck, error) {
	return c.sharedState.Edit(ctx, params)
}

func (c *controller) SharedResync(ctx context.Context, params *entity.SharedResyncParams) (*entity.ResyncResult, error) {
	return c.sharedState.Resync(ctx, params)
}

func (c *controller) S2CReply(ctx context.Context, params *entity.S2CReplyParams) error {
	return c.routing.S2CReply(ctx, params)
}

func workspaceRoot(params *protocol.InitializeParams) string {
	if params == nil {
		return ""
	}
	root := string(params.RootURI)
	return strings.TrimPrefix(root, "file://")
}
