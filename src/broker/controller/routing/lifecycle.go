package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
)

const (
	// Graceful shutdown escalation deadlines.
	_shutdownAckTimeout  = 300 * time.Millisecond
	_exitWaitTimeout     = 500 * time.Millisecond
	_postKillWaitTimeout = 1 * time.Second
)

func (c *controller) StartServer(ctx context.Context, cfg entity.ServerConfig) (*entity.LspStartResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Command == "" {
		return nil, fmt.Errorf("%w: missing server command", errors.NoMessageOnWireError)
	}

	key := entity.NewProjectKey(cfg)

	c.mu.Lock()
	if serverID, ok := c.byKey[key]; ok {
		entry := c.servers[serverID]
		c.attachLocked(entry, s.UUID)
		ready := entry.ready
		c.mu.Unlock()

		c.recordAttachment(ctx, s.UUID, serverID)

		// Reuse the in-flight or running instance; wait out the handshake if
		// it has not completed yet.
		select {
		case <-ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if entry.startErr != nil {
			return nil, entry.startErr
		}
		return &entity.LspStartResult{ServerID: serverID, Reused: true}, nil
	}

	serverID := uuid.Must(uuid.NewV4())
	callCtx, cancelCalls := context.WithCancel(context.Background())
	entry := &serverEntry{
		callCtx:     callCtx,
		cancelCalls: cancelCalls,
		attached:    make(map[uuid.UUID]struct{}),
		ready:       make(chan struct{}),
	}

	// Insert before the handshake completes so concurrent starts for the
	// same key observe the in-flight instance instead of double-spawning.
	inst, err := c.launcher.Launch(context.Background(), serverID, cfg, c.serverHandler(serverID))
	if err != nil {
		c.mu.Unlock()
		cancelCalls()
		return nil, err
	}
	entry.inst = inst
	c.servers[serverID] = entry
	c.byKey[key] = serverID
	c.attachLocked(entry, s.UUID)
	c.mu.Unlock()

	c.recordAttachment(ctx, s.UUID, serverID)
	defer c.updateMetrics()

	go c.watchExit(serverID, inst)

	if err := c.handshake(ctx, entry); err != nil {
		c.logger.Errorw("server handshake failed", "serverID", serverID, "err", err)
		c.handleServerExit(serverID, true)
		return nil, err
	}

	return &entity.LspStartResult{ServerID: serverID}, nil
}

// handshake performs the LSP initialize round-trip and marks the server
// Running. The ready channel is closed in every outcome so waiters resume.
func (c *controller) handshake(ctx context.Context, entry *serverEntry) (err error) {
	defer func() {
		entry.startErr = err
		close(entry.ready)
	}()

	initParams := &protocol.InitializeParams{
		RootURI: protocol.DocumentURI("file://" + entry.inst.Config.WorkspaceRoot),
	}
	var initResult protocol.InitializeResult
	if err := c.CallServer(ctx, entry.inst.ID, protocol.MethodInitialize, initParams, &initResult); err != nil {
		return fmt.Errorf("initialize handshake: %w", err)
	}
	if err := entry.inst.Conn.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		return fmt.Errorf("initialized notification: %w", err)
	}

	c.mu.Lock()
	if entry.inst.Status == entity.ServerStatusStarting {
		entry.inst.Status = entity.ServerStatusRunning
	}
	c.mu.Unlock()

	c.logger.Infow("server running", "serverID", entry.inst.ID, "key", entry.inst.Key.String())
	return nil
}

// recordAttachment stores the server id on the session entity, so that the
// session's attachment set drives cleanup fan-out when it ends.
func (c *controller) recordAttachment(ctx context.Context, sessionID, serverID uuid.UUID) {
	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return
	}
	s.AttachServer(serverID)
	if err := c.sessions.Set(ctx, s); err != nil {
		c.logger.Warnw("recording server attachment", "session", sessionID, "err", err)
	}
}

func (c *controller) StopServer(ctx context.Context, serverID uuid.UUID) error {
	c.mu.Lock()
	entry, ok := c.servers[serverID]
	if !ok {
		c.mu.Unlock()
		return &errors.ServerNotFoundError{ServerID: serverID}
	}
	if entry.inst.Status == entity.ServerStatusExited || entry.inst.Status == entity.ServerStatusTerminating {
		c.mu.Unlock()
		return nil
	}
	entry.inst.Status = entity.ServerStatusTerminating
	inst := entry.inst
	c.mu.Unlock()

	c.logger.Infow("terminating server", "serverID", serverID)

	// Best effort shutdown request with a bounded wait for the ack.
	shutdownCtx, cancel := context.WithTimeout(ctx, _shutdownAckTimeout)
	if _, err := inst.Conn.Call(shutdownCtx, protocol.MethodShutdown, nil, nil); err != nil {
		c.logger.Debugw("shutdown request unanswered", "serverID", serverID, "err", err)
	}
	cancel()
	if err := inst.Conn.Notify(ctx, protocol.MethodExit, nil); err != nil {
		c.logger.Debugw("exit notification undeliverable", "serverID", serverID, "err", err)
	}

	select {
	case <-inst.Exited:
	case <-time.After(_exitWaitTimeout):
		c.logger.Warnw("server did not exit in time, killing", "serverID", serverID)
		inst.Kill()
		select {
		case <-inst.Exited:
		case <-time.After(_postKillWaitTimeout):
			c.logger.Errorw("server unresponsive to kill", "serverID", serverID)
		}
	}

	c.handleServerExit(serverID, false)
	return nil
}

// StopAll gracefully shuts down every live server. Used during daemon shutdown.
func (c *controller) StopAll(ctx context.Context) error {
	c.mu.Lock()
	ids := make([]uuid.UUID, 0, len(c.servers))
	for id, entry := range c.servers {
		if entry.inst.Status != entity.ServerStatusExited {
			ids = append(ids, id)
		}
	}
	c.mu.Unlock()

	var err error
	for _, id := range ids {
		err = multierr.Append(err, c.StopServer(ctx, id))
	}
	return err
}

// watchExit drives handleServerExit on abrupt process death.
func (c *controller) watchExit(serverID uuid.UUID, inst *entity.ServerInstance) {
	<-inst.Exited

	c.mu.Lock()
	crashed := inst.Status != entity.ServerStatusTerminating && inst.Status != entity.ServerStatusExited
	c.mu.Unlock()

	c.handleServerExit(serverID, crashed)
}

// handleServerExit finalizes an exited server: every pending S2C and C2S
// request correlated to it is resolved immediately with a cancellation, never
// left to time out. Safe to call more than once.
func (c *controller) handleServerExit(serverID uuid.UUID, crashed bool) {
	c.mu.Lock()
	entry, ok := c.servers[serverID]
	if !ok || entry.inst.Status == entity.ServerStatusExited {
		c.mu.Unlock()
		return
	}
	entry.inst.Status = entity.ServerStatusExited
	if entry.idleTimer != nil {
		entry.idleTimer.Stop()
		entry.idleTimer = nil
	}
	delete(c.byKey, entry.inst.Key)
	for docURI, servers := range c.docServers {
		delete(servers, serverID)
		if len(servers) == 0 {
			delete(c.docServers, docURI)
		}
	}
	attached := append([]uuid.UUID(nil), entry.attachOrder...)
	c.mu.Unlock()

	entry.inst.Conn.Close()
	if entry.cancelCalls != nil {
		entry.cancelCalls()
	}

	cancelled := c.s2c.CancelServer(serverID) + c.c2s.CancelServer(serverID)
	if cancelled > 0 {
		c.stats.Counter("cancelled_requests").Inc(int64(cancelled))
	}
	c.logger.Infow("server exit handled", "serverID", serverID, "crashed", crashed, "cancelledRequests", cancelled)
	c.updateMetrics()

	// The server is gone from every attached session's attachment set.
	for _, sessionID := range attached {
		if s, err := c.sessions.Get(context.Background(), sessionID); err == nil {
			s.DetachServer(serverID)
			if err := c.sessions.Set(context.Background(), s); err != nil {
				c.logger.Warnw("recording server detachment", "session", sessionID, "err", err)
			}
		}
	}

	if !crashed {
		return
	}

	// Let affected sessions know their server is gone; the next LspStart for
	// the same key spawns a fresh instance. Sessions working in the same
	// workspace are warned too, attached or not.
	if root := entry.inst.Config.WorkspaceRoot; root != "" {
		seen := make(map[uuid.UUID]struct{}, len(attached))
		for _, id := range attached {
			seen[id] = struct{}{}
		}
		if others, err := c.sessions.GetAllFromWorkspaceRoot(context.Background(), root); err == nil {
			for _, s := range others {
				if _, ok := seen[s.UUID]; !ok {
					attached = append(attached, s.UUID)
				}
			}
		}
	}

	msg := &protocol.LogMessageParams{
		Type:    protocol.MessageTypeWarning,
		Message: fmt.Sprintf("language server %s exited unexpectedly", serverID),
	}
	for _, sessionID := range attached {
		sCtx := mapper.SessionUUIDToContext(context.Background(), sessionID)
		if err := c.gateway.LogMessage(sCtx, msg); err != nil {
			c.logger.Debugw("notifying session of server crash", "session", sessionID, "err", err)
		}
	}
}
