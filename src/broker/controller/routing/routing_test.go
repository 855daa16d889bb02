package routing

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/gateway/session-client/notifiermock"
	"github.com/multiedit/lsp-broker/src/broker/internal/correlator"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"github.com/multiedit/lsp-broker/src/broker/internal/launcher"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"github.com/multiedit/lsp-broker/src/broker/repository/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeServe implements the server side of the wire for tests: it answers the
// handshake, acks shutdown, closes on exit, echoes test/echo and withholds
// any reply to test/hang.
func fakeServe(ctx context.Context, conn jsonrpc2.Conn) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			return reply(ctx, protocol.InitializeResult{}, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			go conn.Close()
			return nil
		case "test/echo":
			return reply(ctx, json.RawMessage(req.Params()), nil)
		case "test/hang":
			return nil
		default:
			return nil
		}
	}
}

func newTestController(t *testing.T) (*controller, *launcher.InMemory, *notifiermock.MockGateway, session.Repository) {
	ctrl := gomock.NewController(t)
	gw := notifiermock.NewMockGateway(ctrl)
	l := launcher.NewInMemory(fakeServe)
	repo := session.New(tally.NewTestScope("testing", nil))

	c := &controller{
		sessions:    repo,
		gateway:     gw,
		launcher:    l,
		logger:      zap.NewNop().Sugar(),
		stats:       tally.NewTestScope("testing", nil),
		idleLease:   time.Hour,
		servers:     make(map[uuid.UUID]*serverEntry),
		byKey:       make(map[entity.ProjectKey]uuid.UUID),
		diagnostics: make(map[protocol.DocumentURI]*protocol.PublishDiagnosticsParams),
		docViewers:  make(map[protocol.DocumentURI]map[uuid.UUID]struct{}),
		docServers:  make(map[protocol.DocumentURI]map[uuid.UUID]struct{}),
		s2c:         correlator.New(),
		c2s:         correlator.New(),
	}
	t.Cleanup(func() {
		_ = c.StopAll(context.Background())
	})
	return c, l, gw, repo
}

func newTestSession(t *testing.T, repo session.Repository) (uuid.UUID, context.Context) {
	id := uuid.Must(uuid.NewV4())
	require.NoError(t, repo.Set(context.Background(), &entity.Session{UUID: id}))
	return id, mapper.SessionUUIDToContext(context.Background(), id)
}

func TestStartServer(t *testing.T) {
	c, _, _, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)

	cfg := entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"}

	result, err := c.StartServer(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, result.Reused)

	status, err := c.ServerStatus(ctx, result.ServerID)
	require.NoError(t, err)
	assert.Equal(t, entity.ServerStatusRunning, status)
}

func TestStartServerRequiresSession(t *testing.T) {
	c, _, _, _ := newTestController(t)
	_, err := c.StartServer(context.Background(), entity.ServerConfig{Command: "fake-lsp"})
	assert.Error(t, err)
}

func TestStartServerRequiresCommand(t *testing.T) {
	c, _, _, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)
	_, err := c.StartServer(ctx, entity.ServerConfig{WorkspaceRoot: "/repo"})
	assert.Error(t, err)
}

func TestStartServerDeduplicates(t *testing.T) {
	c, _, _, repo := newTestController(t)
	_, ctxA := newTestSession(t, repo)
	_, ctxB := newTestSession(t, repo)

	cfg := entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"}

	first, err := c.StartServer(ctxA, cfg)
	require.NoError(t, err)
	second, err := c.StartServer(ctxB, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.ServerID, second.ServerID)
	assert.True(t, second.Reused)

	// A distinct configuration spawns its own instance.
	other, err := c.StartServer(ctxA, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/other"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ServerID, other.ServerID)
}

func TestStopServer(t *testing.T) {
	c, _, _, repo := newTestController(t)
	sessionID, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	s, err := repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Contains(t, s.Servers, result.ServerID)

	require.NoError(t, c.StopServer(ctx, result.ServerID))

	status, err := c.ServerStatus(ctx, result.ServerID)
	require.NoError(t, err)
	assert.Equal(t, entity.ServerStatusExited, status)

	// The session's attachment set no longer references the dead server.
	s, err = repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.NotContains(t, s.Servers, result.ServerID)

	// Stopping an exited server is a no-op.
	assert.NoError(t, c.StopServer(ctx, result.ServerID))

	// A later start for the same key spawns a fresh instance.
	fresh, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)
	assert.False(t, fresh.Reused)
	assert.NotEqual(t, result.ServerID, fresh.ServerID)
}

func TestStopServerUnknown(t *testing.T) {
	c, _, _, _ := newTestController(t)
	err := c.StopServer(context.Background(), uuid.Must(uuid.NewV4()))
	require.Error(t, err)
	var nf *errors.ServerNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStopAll(t *testing.T) {
	c, _, _, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)

	a, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo-a"})
	require.NoError(t, err)
	b, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo-b"})
	require.NoError(t, err)

	require.NoError(t, c.StopAll(ctx))

	for _, id := range []uuid.UUID{a.ServerID, b.ServerID} {
		status, err := c.ServerStatus(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.ServerStatusExited, status)
	}
}

func TestCallServerEcho(t *testing.T) {
	c, _, _, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	var out map[string]string
	err = c.CallServer(ctx, result.ServerID, "test/echo", map[string]string{"k": "v"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "v", out["k"])
}

func TestCallServerUnknown(t *testing.T) {
	c, _, _, _ := newTestController(t)
	err := c.CallServer(context.Background(), uuid.Must(uuid.NewV4()), "test/echo", nil, nil)
	require.Error(t, err)
	var nf *errors.ServerNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStopServerCancelsPendingRequests(t *testing.T) {
	c, _, _, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	callErr := make(chan error, 1)
	go func() {
		callErr <- c.CallServer(ctx, result.ServerID, "test/hang", nil, nil)
	}()

	// Give the call time to register before tearing down.
	require.Eventually(t, func() bool { return c.c2s.Count() > 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.StopServer(ctx, result.ServerID))

	select {
	case err := <-callErr:
		require.Error(t, err)
		assert.True(t, errors.IsRequestCancelled(err))
	case <-time.After(2 * time.Second):
		t.Fatal("pending request was not cancelled on teardown")
	}
}

func TestServerRequestRoundTrip(t *testing.T) {
	c, l, gw, repo := newTestController(t)
	sessionID, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	events := make(chan *entity.ServerRequestEvent, 1)
	gw.EXPECT().ServerRequest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(sCtx context.Context, ev *entity.ServerRequestEvent) error {
			// The pending entry must be observable before the event reaches
			// the session, so a fast reply always correlates.
			assert.True(t, c.s2c.Pending(ev.RequestID))
			id, err := mapper.ContextToSessionUUID(sCtx)
			assert.NoError(t, err)
			assert.Equal(t, sessionID, id)
			events <- ev
			return nil
		})

	serverConn := l.Conns[0]
	callResult := make(chan json.RawMessage, 1)
	go func() {
		var raw json.RawMessage
		_, err := serverConn.Call(context.Background(), "window/showMessageRequest", map[string]string{"message": "pick"}, &raw)
		if err == nil {
			callResult <- raw
		}
	}()

	var ev *entity.ServerRequestEvent
	select {
	case ev = <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("server request was not delivered to the session")
	}
	assert.Equal(t, result.ServerID, ev.ServerID)
	assert.Equal(t, "window/showMessageRequest", ev.Method)

	require.NoError(t, c.S2CReply(ctx, &entity.S2CReplyParams{
		ServerID:  ev.ServerID,
		RequestID: ev.RequestID,
		Result:    json.RawMessage(`{"title":"ok"}`),
	}))

	select {
	case raw := <-callResult:
		assert.JSONEq(t, `{"title":"ok"}`, string(raw))
	case <-time.After(2 * time.Second):
		t.Fatal("reply never reached the server")
	}
}

func TestStopServerCancelsPendingServerRequests(t *testing.T) {
	c, l, gw, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	events := make(chan *entity.ServerRequestEvent, 1)
	gw.EXPECT().ServerRequest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(sCtx context.Context, ev *entity.ServerRequestEvent) error {
			events <- ev
			return nil
		})

	callCtx, cancelCall := context.WithCancel(context.Background())
	defer cancelCall()
	serverConn := l.Conns[0]
	callErr := make(chan error, 1)
	go func() {
		var raw json.RawMessage
		_, err := serverConn.Call(callCtx, "window/showMessageRequest", nil, &raw)
		callErr <- err
	}()

	var ev *entity.ServerRequestEvent
	select {
	case ev = <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("server request was not delivered to the session")
	}

	require.NoError(t, c.StopServer(ctx, result.ServerID))

	// The pending entry was resolved by exit handling; a late session reply
	// finds nothing to correlate with.
	err = c.S2CReply(ctx, &entity.S2CReplyParams{ServerID: ev.ServerID, RequestID: ev.RequestID})
	assert.Error(t, err)

	cancelCall()
	select {
	case err := <-callErr:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server-side call did not unwind after teardown")
	}
}

func TestS2CReplyUnknownRequest(t *testing.T) {
	c, _, _, _ := newTestController(t)
	err := c.S2CReply(context.Background(), &entity.S2CReplyParams{RequestID: "missing"})
	assert.Error(t, err)
}

func TestDiagnosticsCacheAndReplay(t *testing.T) {
	c, l, gw, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)

	_, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	docURI := protocol.DocumentURI("file:///repo/main.go")
	params := &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: []protocol.Diagnostic{{Message: "unused variable"}},
	}

	// Published with zero viewers: cached, nothing fanned out.
	serverConn := l.Conns[0]
	require.NoError(t, serverConn.Notify(context.Background(), protocol.MethodTextDocumentPublishDiagnostics, params))

	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.diagnostics[docURI] != nil
	}, 2*time.Second, 5*time.Millisecond)

	// A session attaching later gets the cached payload replayed.
	viewerID, viewerCtx := newTestSession(t, repo)
	replayed := make(chan *protocol.PublishDiagnosticsParams, 1)
	gw.EXPECT().PublishDiagnostics(gomock.Any(), gomock.Any()).DoAndReturn(
		func(sCtx context.Context, p *protocol.PublishDiagnosticsParams) error {
			id, err := mapper.ContextToSessionUUID(sCtx)
			assert.NoError(t, err)
			assert.Equal(t, viewerID, id)
			replayed <- p
			return nil
		})

	require.NoError(t, c.AttachSession(viewerCtx, viewerID, docURI))

	select {
	case p := <-replayed:
		require.Len(t, p.Diagnostics, 1)
		assert.Equal(t, "unused variable", p.Diagnostics[0].Message)
	case <-time.After(time.Second):
		t.Fatal("cached diagnostics were not replayed")
	}
}

func TestDiagnosticsFanOutToViewers(t *testing.T) {
	c, l, gw, repo := newTestController(t)
	_, ctx := newTestSession(t, repo)

	_, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	docURI := protocol.DocumentURI("file:///repo/main.go")
	viewerID, viewerCtx := newTestSession(t, repo)
	require.NoError(t, c.AttachSession(viewerCtx, viewerID, docURI))

	delivered := make(chan struct{}, 1)
	gw.EXPECT().PublishDiagnostics(gomock.Any(), gomock.Any()).DoAndReturn(
		func(sCtx context.Context, p *protocol.PublishDiagnosticsParams) error {
			delivered <- struct{}{}
			return nil
		})

	serverConn := l.Conns[0]
	require.NoError(t, serverConn.Notify(context.Background(), protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: []protocol.Diagnostic{{Message: "syntax error"}},
	}))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("diagnostics were not fanned out to the viewer")
	}
}

func TestIdleLeaseReclaimsServer(t *testing.T) {
	c, _, _, repo := newTestController(t)
	c.idleLease = 100 * time.Millisecond
	sessionID, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	require.NoError(t, c.EndSession(ctx, sessionID))

	require.Eventually(t, func() bool {
		status, err := c.ServerStatus(ctx, result.ServerID)
		return err == nil && status == entity.ServerStatusExited
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIdleLeaseCancelledByReattach(t *testing.T) {
	c, _, _, repo := newTestController(t)
	c.idleLease = 100 * time.Millisecond
	sessionID, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	require.NoError(t, c.EndSession(ctx, sessionID))

	// Reattachment before expiry keeps the instance alive.
	_, ctxB := newTestSession(t, repo)
	reused, err := c.StartServer(ctxB, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)
	require.True(t, reused.Reused)
	require.Equal(t, result.ServerID, reused.ServerID)

	time.Sleep(300 * time.Millisecond)
	status, err := c.ServerStatus(ctx, result.ServerID)
	require.NoError(t, err)
	assert.Equal(t, entity.ServerStatusRunning, status)
}

func TestCrashNotifiesAttachedSessions(t *testing.T) {
	c, l, gw, repo := newTestController(t)
	sessionID, ctx := newTestSession(t, repo)

	result, err := c.StartServer(ctx, entity.ServerConfig{Command: "fake-lsp", WorkspaceRoot: "/repo"})
	require.NoError(t, err)

	// A second session in the same workspace, not attached to the server.
	bystanderID := uuid.Must(uuid.NewV4())
	require.NoError(t, repo.Set(context.Background(), &entity.Session{UUID: bystanderID, WorkspaceRoot: "/repo"}))

	warned := make(chan uuid.UUID, 2)
	gw.EXPECT().LogMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(sCtx context.Context, p *protocol.LogMessageParams) error {
			id, err := mapper.ContextToSessionUUID(sCtx)
			assert.NoError(t, err)
			assert.Equal(t, protocol.MessageTypeWarning, p.Type)
			warned <- id
			return nil
		}).Times(2)

	// Abrupt death, no shutdown request involved.
	l.Conns[0].Close()

	var got []uuid.UUID
	for len(got) < 2 {
		select {
		case id := <-warned:
			got = append(got, id)
		case <-time.After(2 * time.Second):
			t.Fatal("sessions were not warned about the crash")
		}
	}
	assert.ElementsMatch(t, []uuid.UUID{sessionID, bystanderID}, got)

	require.Eventually(t, func() bool {
		status, err := c.ServerStatus(ctx, result.ServerID)
		return err == nil && status == entity.ServerStatusExited
	}, 2*time.Second, 10*time.Millisecond)
}
