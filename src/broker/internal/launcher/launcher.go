// Package launcher abstracts the spawning of language server processes.
// The production implementation runs a child process with piped stdio; an
// in-memory implementation substitutes a duplex pipe and a fake server actor
// for tests. Consumers must not depend on which one they are given.
package launcher

import (
	"context"
	"io"
	"os/exec"

	"github.com/gofrs/uuid"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	"github.com/multiedit/lsp-broker/src/broker/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module provides the production launcher for injection using fx.
var Module = fx.Options(
	fx.Provide(NewProcessLauncher),
)

// Launcher spawns one language server and exposes its message stream plus an
// exit signal. The returned instance is in Starting state; the caller owns
// the handshake and all later transitions.
type Launcher interface {
	Launch(ctx context.Context, serverID uuid.UUID, cfg entity.ServerConfig, handler jsonrpc2.Handler) (*entity.ServerInstance, error)
}

type processLauncher struct {
	logger *zap.SugaredLogger
}

// NewProcessLauncher returns a Launcher that spawns real child processes.
func NewProcessLauncher(logger *zap.SugaredLogger) Launcher {
	return &processLauncher{logger: logger.With("component", "launcher")}
}

func (l *processLauncher) Launch(ctx context.Context, serverID uuid.UUID, cfg entity.ServerConfig, handler jsonrpc2.Handler) (*entity.ServerInstance, error) {
	cmd := exec.Command(cfg.Command, cfg.Args...)
	cmd.Dir = cfg.WorkspaceRoot

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &errors.SpawnError{Command: cfg.Command, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &errors.SpawnError{Command: cfg.Command, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &errors.SpawnError{Command: cfg.Command, Err: err}
	}
	l.logger.Infow("spawned language server", "serverID", serverID, "command", cfg.Command, "pid", cmd.Process.Pid)

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(&stdioPipe{in: stdin, out: stdout}))
	conn.Go(ctx, handler)

	exited := make(chan struct{})
	go func() {
		err := cmd.Wait()
		l.logger.Infow("language server exited", "serverID", serverID, "err", err)
		conn.Close()
		close(exited)
	}()

	return &entity.ServerInstance{
		ID:     serverID,
		Key:    entity.NewProjectKey(cfg),
		Config: cfg,
		Status: entity.ServerStatusStarting,
		Conn:   conn,
		Exited: exited,
		Kill: func() {
			if cmd.Process != nil {
				cmd.Process.Kill()
			}
		},
	}, nil
}

// stdioPipe joins the child's stdin and stdout into one ReadWriteCloser.
type stdioPipe struct {
	in  io.WriteCloser
	out io.ReadCloser
}

func (s *stdioPipe) Read(p []byte) (int, error)  { return s.out.Read(p) }
func (s *stdioPipe) Write(p []byte) (int, error) { return s.in.Write(p) }

func (s *stdioPipe) Close() error {
	return multierr.Append(s.in.Close(), s.out.Close())
}
