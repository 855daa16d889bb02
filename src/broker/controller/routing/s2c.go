package routing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/internal/correlator"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// CallServer performs a broker-to-server request through the C2S correlation
// table. The pending entry is registered before the request is handed to the
// transport, and resolved either by the server's reply or by exit handling.
func (c *controller) CallServer(ctx context.Context, serverID uuid.UUID, method string, params, result interface{}) error {
	c.mu.Lock()
	entry, ok := c.servers[serverID]
	if !ok || entry.inst.Status == entity.ServerStatusExited {
		c.mu.Unlock()
		return &errors.ServerNotFoundError{ServerID: serverID}
	}
	conn := entry.inst.Conn
	serverCtx := entry.callCtx
	c.mu.Unlock()

	requestID := uuid.Must(uuid.NewV4()).String()
	done := c.c2s.Register(serverID, requestID)

	// The call context dies with either the caller or the server, so the
	// goroutine below can never outlive the instance it talks to.
	callCtx, cancel := context.WithCancel(ctx)
	var stop func() bool
	if serverCtx != nil {
		stop = context.AfterFunc(serverCtx, cancel)
	}

	go func() {
		defer cancel()
		if stop != nil {
			defer stop()
		}
		var raw json.RawMessage
		_, err := conn.Call(callCtx, method, params, &raw)
		c.c2s.Resolve(requestID, correlator.Result{Payload: raw, Err: err})
	}()

	res := <-done
	if res.Err != nil {
		return res.Err
	}
	if result != nil && res.Payload != nil {
		if err := json.Unmarshal(res.Payload, result); err != nil {
			return fmt.Errorf("decoding %q response: %w", method, err)
		}
	}
	return nil
}

// serverHandler builds the jsonrpc2 handler that receives all traffic
// originated by one server process.
func (c *controller) serverHandler(serverID uuid.UUID) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if _, ok := req.(*jsonrpc2.Call); ok {
			// Server-initiated request; answered asynchronously once a
			// session replies, so the connection loop is not blocked.
			go c.handleBeginS2C(ctx, serverID, reply, req)
			return nil
		}
		return c.handleServerNotif(ctx, serverID, req)
	}
}

// handleBeginS2C correlates one server-to-client request. The pending entry
// is inserted before the request event is handed to the session transport,
// so a fast reply can never arrive uncorrelatable.
func (c *controller) handleBeginS2C(ctx context.Context, serverID uuid.UUID, reply jsonrpc2.Replier, req jsonrpc2.Request) {
	call := req.(*jsonrpc2.Call)
	requestID := fmt.Sprintf("%s/%s", serverID, call.ID())

	c.mu.Lock()
	entry, ok := c.servers[serverID]
	var target uuid.UUID
	if ok && len(entry.attachOrder) > 0 {
		target = entry.attachOrder[0]
	}
	c.mu.Unlock()

	if !ok || target == uuid.Nil {
		reply(ctx, nil, fmt.Errorf("no session attached to server %q", serverID))
		return
	}

	done := c.s2c.Register(serverID, requestID)

	ev := &entity.ServerRequestEvent{
		ServerID:  serverID,
		RequestID: requestID,
		Method:    req.Method(),
		Params:    req.Params(),
	}
	sCtx := mapper.SessionUUIDToContext(ctx, target)
	if err := c.gateway.ServerRequest(sCtx, ev); err != nil {
		c.s2c.Resolve(requestID, correlator.Result{Err: err})
	}

	res := <-done
	if err := reply(ctx, json.RawMessage(res.Payload), res.Err); err != nil {
		c.logger.Debugw("replying to server request", "serverID", serverID, "err", err)
	}
}

// S2CReply resolves a pending server-to-client request with a session's answer.
func (c *controller) S2CReply(ctx context.Context, params *entity.S2CReplyParams) error {
	res := correlator.Result{Payload: params.Result}
	if params.Error != "" {
		res.Err = errors.New(params.Error)
	}
	if !c.s2c.Resolve(params.RequestID, res) {
		return fmt.Errorf("no pending server request %q", params.RequestID)
	}
	return nil
}

// handleServerNotif processes a notification originated by a server.
func (c *controller) handleServerNotif(ctx context.Context, serverID uuid.UUID, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodTextDocumentPublishDiagnostics:
		params := protocol.PublishDiagnosticsParams{}
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return fmt.Errorf("decoding diagnostics from %q: %w", serverID, err)
		}
		return c.publishDiagnostics(ctx, &params)

	case protocol.MethodWindowLogMessage, protocol.MethodWindowShowMessage, protocol.MethodTelemetryEvent, protocol.MethodProgress:
		// Informational traffic is not currently fanned out.
		return nil

	default:
		// Unrecognized notification shapes are logged rather than silently
		// forwarded.
		c.logger.Debugw("unrecognized server notification", "serverID", serverID, "method", req.Method())
		return nil
	}
}

// publishDiagnostics caches the latest payload for the document and fans it
// out to attached viewers. The cache is updated unconditionally, even with
// zero viewers, so later attaches can be replayed.
func (c *controller) publishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error {
	docURI, err := mapper.NormalizeDocumentURI(params.URI)
	if err != nil {
		return err
	}
	params.URI = docURI

	c.mu.Lock()
	c.diagnostics[docURI] = params
	viewers := make([]uuid.UUID, 0, len(c.docViewers[docURI]))
	for sessionID := range c.docViewers[docURI] {
		viewers = append(viewers, sessionID)
	}
	c.mu.Unlock()

	c.stats.Counter("diagnostics_published").Inc(1)
	for _, sessionID := range viewers {
		sCtx := mapper.SessionUUIDToContext(ctx, sessionID)
		if err := c.gateway.PublishDiagnostics(sCtx, params); err != nil {
			c.logger.Debugw("publishing diagnostics", "session", sessionID, "err", err)
		}
	}
	return nil
}
