package broker

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/controller/broker/brokermock"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/factory"
	"github.com/multiedit/lsp-broker/src/broker/internal/jsonrpcfx"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/mock/gomock"
)

// fakeJSONRPCModule records the registered connection manager without
// listening on a real socket.
type fakeJSONRPCModule struct {
	registered jsonrpcfx.ConnectionManager
	failReg    bool
}

func (f *fakeJSONRPCModule) OnStart(ctx context.Context) error { return nil }

func (f *fakeJSONRPCModule) ServeStream(ctx context.Context, conn jsonrpc2.Conn) error { return nil }

func (f *fakeJSONRPCModule) RegisterConnectionManager(cm jsonrpcfx.ConnectionManager) error {
	if f.failReg {
		return assert.AnError
	}
	f.registered = cm
	return nil
}

type replyCapture struct {
	called bool
	result interface{}
	err    error
}

func (rc *replyCapture) replier() jsonrpc2.Replier {
	return func(ctx context.Context, result interface{}, err error) error {
		rc.called = true
		rc.result = result
		rc.err = err
		return nil
	}
}

func newTestRouter(t *testing.T) (*jsonRPCRouter, *brokermock.MockController) {
	ctrl := brokermock.NewMockController(gomock.NewController(t))
	r := &jsonRPCRouter{
		broker: ctrl,
		uuid:   factory.UUID(),
		stats:  tally.NewTestScope("testing", nil),
	}
	return r, ctrl
}

func TestNewRegistersConnectionManager(t *testing.T) {
	ctrl := brokermock.NewMockController(gomock.NewController(t))
	mod := &fakeJSONRPCModule{}

	h, err := New(ctrl, mod, tally.NewTestScope("testing", nil))
	require.NoError(t, err)
	assert.NotNil(t, mod.registered)
	assert.Equal(t, mod.registered, h.ConnectionManager())
}

func TestNewRegistrationFailure(t *testing.T) {
	ctrl := brokermock.NewMockController(gomock.NewController(t))
	_, err := New(ctrl, &fakeJSONRPCModule{failReg: true}, tally.NewTestScope("testing", nil))
	assert.Error(t, err)
}

func TestNewConnection(t *testing.T) {
	ctrl := brokermock.NewMockController(gomock.NewController(t))
	cm := &jsonRPCConnectionManager{ctrl: ctrl, stats: tally.NewTestScope("testing", nil)}

	id := factory.UUID()
	ctrl.EXPECT().InitSession(gomock.Any(), gomock.Any()).Return(id, nil)

	router, err := cm.NewConnection(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, id, router.UUID())
}

func TestNewConnectionFailure(t *testing.T) {
	ctrl := brokermock.NewMockController(gomock.NewController(t))
	cm := &jsonRPCConnectionManager{ctrl: ctrl, stats: tally.NewTestScope("testing", nil)}

	ctrl.EXPECT().InitSession(gomock.Any(), gomock.Any()).Return(uuid.Nil, assert.AnError)

	_, err := cm.NewConnection(context.Background(), nil)
	assert.Error(t, err)
}

func TestRemoveConnection(t *testing.T) {
	ctrl := brokermock.NewMockController(gomock.NewController(t))
	cm := &jsonRPCConnectionManager{ctrl: ctrl, stats: tally.NewTestScope("testing", nil)}

	id := factory.UUID()
	ctrl.EXPECT().EndSession(gomock.Any(), id).DoAndReturn(
		func(ctx context.Context, got uuid.UUID) error {
			// The session UUID is restored on the context even when the
			// connection dropped without an exit exchange.
			ctxID, err := mapper.ContextToSessionUUID(ctx)
			assert.NoError(t, err)
			assert.Equal(t, id, ctxID)
			return nil
		})

	cm.RemoveConnection(context.Background(), id)
}

func TestHandleReqCarriesSessionUUID(t *testing.T) {
	r, ctrl := newTestRouter(t)

	ctrl.EXPECT().SharedFocus(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params *entity.SharedFocusParams) (*entity.FocusResult, error) {
			id, err := mapper.ContextToSessionUUID(ctx)
			assert.NoError(t, err)
			assert.Equal(t, r.uuid, id)
			return &entity.FocusResult{Epoch: 3}, nil
		})

	rc := &replyCapture{}
	req := factory.JSONRPCRequest(entity.MethodSharedFocus, entity.SharedFocusParams{URI: "file:///repo/main.go"})
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))

	require.True(t, rc.called)
	require.NoError(t, rc.err)
	result, ok := rc.result.(*entity.FocusResult)
	require.True(t, ok)
	assert.Equal(t, uint64(3), result.Epoch)
}

func TestHandleReqInitialize(t *testing.T) {
	r, ctrl := newTestRouter(t)

	ctrl.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{Name: "lsp-broker"},
	}, nil)

	rc := &replyCapture{}
	req := factory.JSONRPCRequest(protocol.MethodInitialize, protocol.InitializeParams{})
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))

	require.NoError(t, rc.err)
	result, ok := rc.result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "lsp-broker", result.ServerInfo.Name)
}

func TestHandleReqInitialized(t *testing.T) {
	r, _ := newTestRouter(t)

	rc := &replyCapture{}
	req := factory.JSONRPCRequest(protocol.MethodInitialized, protocol.InitializedParams{})
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))
	assert.True(t, rc.called)
	assert.NoError(t, rc.err)
}

func TestHandleReqShutdown(t *testing.T) {
	r, ctrl := newTestRouter(t)

	ctrl.EXPECT().Shutdown(gomock.Any()).Return(nil)

	rc := &replyCapture{}
	req := factory.JSONRPCRequest(protocol.MethodShutdown, nil)
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))
	assert.True(t, rc.called)
	assert.NoError(t, rc.err)
}

func TestHandleReqExitRepliesFirst(t *testing.T) {
	r, ctrl := newTestRouter(t)

	rc := &replyCapture{}
	ctrl.EXPECT().Exit(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		// The reply must already be on the wire when the controller starts
		// tearing the daemon down.
		assert.True(t, rc.called)
		return nil
	})

	req := factory.JSONRPCRequest(protocol.MethodExit, nil)
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))
}

func TestHandleReqRequestFullShutdown(t *testing.T) {
	r, ctrl := newTestRouter(t)

	ctrl.EXPECT().RequestFullShutdown(gomock.Any()).Return(nil)

	rc := &replyCapture{}
	req := factory.JSONRPCRequest(entity.MethodRequestFullShutdown, nil)
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))
	assert.NoError(t, rc.err)
}

func TestHandleReqLspStart(t *testing.T) {
	r, ctrl := newTestRouter(t)

	serverID := factory.UUID()
	ctrl.EXPECT().LspStart(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params *entity.LspStartParams) (*entity.LspStartResult, error) {
			assert.Equal(t, "gopls", params.Config.Command)
			return &entity.LspStartResult{ServerID: serverID}, nil
		})

	rc := &replyCapture{}
	req := factory.JSONRPCRequest(entity.MethodLspStart, entity.LspStartParams{
		Config: entity.ServerConfig{Command: "gopls", WorkspaceRoot: "/repo"},
	})
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))

	require.NoError(t, rc.err)
	result, ok := rc.result.(*entity.LspStartResult)
	require.True(t, ok)
	assert.Equal(t, serverID, result.ServerID)
}

func TestHandleReqSharedEdit(t *testing.T) {
	r, ctrl := newTestRouter(t)

	ctrl.EXPECT().SharedEdit(gomock.Any(), gomock.Any()).Return(&entity.EditAck{Epoch: 1, Version: 2}, nil)

	rc := &replyCapture{}
	req := factory.JSONRPCRequest(entity.MethodSharedEdit, entity.SharedEditParams{URI: "file:///repo/main.go", Epoch: 1})
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))

	require.NoError(t, rc.err)
	ack, ok := rc.result.(*entity.EditAck)
	require.True(t, ok)
	assert.Equal(t, int32(2), ack.Version)
}

func TestHandleReqMalformedParams(t *testing.T) {
	r, _ := newTestRouter(t)

	// The controller is never reached; the mock has no expectations.
	rc := &replyCapture{}
	req := factory.JSONRPCRequest(entity.MethodSharedEdit, "not-an-object")
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))

	require.True(t, rc.called)
	assert.ErrorIs(t, rc.err, jsonrpc2.ErrParse)
}

func TestHandleReqUnknownMethod(t *testing.T) {
	r, _ := newTestRouter(t)

	rc := &replyCapture{}
	req := factory.JSONRPCRequest("unsupported/method", nil)
	require.NoError(t, r.HandleReq(context.Background(), rc.replier(), req))

	require.True(t, rc.called)
	assert.ErrorIs(t, rc.err, jsonrpc2.ErrMethodNotFound)
}
