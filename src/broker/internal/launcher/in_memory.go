package launcher

import (
	"context"
	"net"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"go.lsp.dev/jsonrpc2"
)

// ServeFunc builds the handler for the fake server side of an in-memory
// launch. The provided conn lets the fake server originate its own requests
// and notifications toward the broker.
type ServeFunc func(ctx context.Context, conn jsonrpc2.Conn) jsonrpc2.Handler

// InMemory is a Launcher substitute that wires an in-memory duplex byte
// stream to a fake server actor instead of spawning a process.
type InMemory struct {
	Serve ServeFunc

	// Conns collects the server-side conn of every launch, most recent last.
	Conns []jsonrpc2.Conn
}

// NewInMemory returns an in-memory launcher backed by the given fake server.
func NewInMemory(serve ServeFunc) *InMemory {
	return &InMemory{Serve: serve}
}

// Launch implements Launcher over a net.Pipe pair.
func (l *InMemory) Launch(ctx context.Context, serverID uuid.UUID, cfg entity.ServerConfig, handler jsonrpc2.Handler) (*entity.ServerInstance, error) {
	clientSide, serverSide := net.Pipe()

	serverConn := jsonrpc2.NewConn(jsonrpc2.NewStream(serverSide))
	serverConn.Go(ctx, l.Serve(ctx, serverConn))
	l.Conns = append(l.Conns, serverConn)

	clientConn := jsonrpc2.NewConn(jsonrpc2.NewStream(clientSide))
	clientConn.Go(ctx, handler)

	exited := make(chan struct{})
	go func() {
		<-serverConn.Done()
		clientConn.Close()
		close(exited)
	}()

	return &entity.ServerInstance{
		ID:     serverID,
		Key:    entity.NewProjectKey(cfg),
		Config: cfg,
		Status: entity.ServerStatusStarting,
		Conn:   clientConn,
		Exited: exited,
		Kill: func() {
			serverConn.Close()
		},
	}, nil
}
