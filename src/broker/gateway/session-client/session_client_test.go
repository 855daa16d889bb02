package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/factory"
	"github.com/multiedit/lsp-broker/src/broker/internal/mock/jsonrpc2mock"
	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func getTestGateway(t *testing.T) (*gateway, *jsonrpc2mock.MockConn, context.Context) {
	ctrl := gomock.NewController(t)
	g := &gateway{
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop().Sugar(),
	}

	id := factory.UUID()
	mockConn := jsonrpc2mock.NewMockConn(ctrl)
	var conn jsonrpc2.Conn = mockConn
	require.NoError(t, g.RegisterClient(context.Background(), id, &conn))

	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
	return g, mockConn, ctx
}

func TestRegisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := &gateway{
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop().Sugar(),
	}

	for i := 0; i < 10; i++ {
		id := factory.UUID()
		mockConn := jsonrpc2mock.NewMockConn(ctrl)
		var conn jsonrpc2.Conn = mockConn
		err := g.RegisterClient(ctx, id, &conn)
		assert.NoError(t, err)
	}

	assert.Len(t, g.connections, 10)
}

func TestDeregisterClient(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	g := &gateway{
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop().Sugar(),
	}

	for i := 0; i < 10; i++ {
		mockConn := jsonrpc2mock.NewMockConn(ctrl)
		var conn jsonrpc2.Conn = mockConn
		err := g.RegisterClient(ctx, factory.UUID(), &conn)
		require.NoError(t, err)
	}

	for key := range g.connections {
		assert.NotNil(t, g.connections[key])
		err := g.DeregisterClient(ctx, key)
		assert.NoError(t, err)
		assert.Nil(t, g.connections[key])
	}
	assert.Len(t, g.connections, 0)

	// Deregistering an unknown session is a no-op.
	assert.NoError(t, g.DeregisterClient(ctx, factory.UUID()))
}

func TestOwnershipChanged(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	ev := &entity.OwnershipChangedEvent{
		URI:   "file:///repo/a.go",
		Owner: factory.UUID(),
		Epoch: 2,
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(entity.MethodOwnershipChanged), gomock.Eq(ev)).Return(nil)
		err := g.OwnershipChanged(ctx, ev)
		assert.NoError(t, err)
	})
	t.Run("invalid context", func(t *testing.T) {
		err := g.OwnershipChanged(context.Background(), ev)
		assert.Error(t, err)
	})
	t.Run("client not found", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, factory.UUID())
		err := g.OwnershipChanged(ctx, ev)
		assert.Error(t, err)
	})
}

func TestSharedDelta(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	ev := &entity.SharedDeltaEvent{URI: "file:///repo/a.go", Epoch: 1, Version: 4}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(entity.MethodSharedDelta), gomock.Eq(ev)).Return(nil)
		err := g.SharedDelta(ctx, ev)
		assert.NoError(t, err)
	})
}

func TestServerRequest(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	ev := &entity.ServerRequestEvent{
		ServerID:  factory.UUID(),
		RequestID: "srv/1",
		Method:    "window/showMessageRequest",
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(entity.MethodServerRequest), gomock.Eq(ev)).Return(nil)
		err := g.ServerRequest(ctx, ev)
		assert.NoError(t, err)
	})
}

func TestPublishDiagnostics(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	params := &protocol.PublishDiagnosticsParams{
		URI:         "file:///sample.go",
		Diagnostics: []protocol.Diagnostic{},
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodTextDocumentPublishDiagnostics), gomock.Eq(params)).Return(nil)
		err := g.PublishDiagnostics(ctx, params)
		assert.NoError(t, err)
	})
}

func TestSessionLostFanOut(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	var mu sync.Mutex
	lost := make([]uuid.UUID, 0)
	notified := make(chan struct{}, 2)
	g.OnSessionLost(func(id uuid.UUID) {
		mu.Lock()
		lost = append(lost, id)
		mu.Unlock()
		notified <- struct{}{}
	})

	ev := &entity.UnlockedEvent{URI: "file:///repo/a.go", Epoch: 1}

	// First failed send removes the connection and fans out exactly once.
	mockConn.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broken pipe"))
	err := g.Unlocked(ctx, ev)
	require.Error(t, err)

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("session lost handler was not invoked")
	}

	// Further sends fail on lookup and never fan out again.
	err = g.Unlocked(ctx, ev)
	require.Error(t, err)

	select {
	case <-notified:
		t.Fatal("session lost handler invoked more than once")
	case <-time.After(50 * time.Millisecond):
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lost, 1)
	id, err := mapper.ContextToSessionUUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, lost[0])
}
