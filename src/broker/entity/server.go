package entity

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// ServerStatus describes the lifecycle state of a language server process.
type ServerStatus int

const (
	// ServerStatusStarting indicates the launcher has been invoked but the handshake has not completed.
	ServerStatusStarting ServerStatus = iota
	// ServerStatusRunning indicates the server completed its handshake and is serving requests.
	ServerStatusRunning
	// ServerStatusTerminating indicates a graceful shutdown is in progress.
	ServerStatusTerminating
	// ServerStatusExited is terminal, reached by graceful completion or abrupt process death.
	ServerStatusExited
)

// String implements fmt.Stringer.
func (s ServerStatus) String() string {
	switch s {
	case ServerStatusStarting:
		return "starting"
	case ServerStatusRunning:
		return "running"
	case ServerStatusTerminating:
		return "terminating"
	case ServerStatusExited:
		return "exited"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// ServerConfig describes how to launch a language server.
type ServerConfig struct {
	Command       string   `yaml:"command" json:"command"`
	Args          []string `yaml:"args" json:"args"`
	WorkspaceRoot string   `yaml:"workspaceRoot" json:"workspaceRoot"`
}

// ProjectKey is the de-duplication identity for language servers. Sessions
// whose configuration and project root produce the same key share one server.
type ProjectKey struct {
	Command       string
	Args          string
	WorkspaceRoot string
}

// NewProjectKey derives the sharing key for a server configuration. When no
// workspace root is known, a synthetic hash of the command line stands in so
// that rootless configurations still de-duplicate consistently.
func NewProjectKey(cfg ServerConfig) ProjectKey {
	root := cfg.WorkspaceRoot
	args := strings.Join(cfg.Args, "\x00")
	if root == "" {
		root = fmt.Sprintf("synthetic:%x", xxhash.Sum64String(cfg.Command+"\x00"+args))
	}
	return ProjectKey{
		Command:       cfg.Command,
		Args:          args,
		WorkspaceRoot: root,
	}
}

// String implements fmt.Stringer.
func (k ProjectKey) String() string {
	return fmt.Sprintf("%s [%s] @ %s", k.Command, strings.ReplaceAll(k.Args, "\x00", " "), k.WorkspaceRoot)
}

// ServerInstance is one running or starting language server process.
// Instances are owned exclusively by the routing controller; other components
// query facts about them by message, never by direct mutation.
type ServerInstance struct {
	ID     uuid.UUID
	Key    ProjectKey
	Config ServerConfig
	Status ServerStatus

	// Conn carries JSON-RPC traffic to and from the server process.
	Conn jsonrpc2.Conn

	// Exited is closed by the launcher when the underlying process exits,
	// for any reason.
	Exited <-chan struct{}

	// Kill forcibly terminates the underlying process. Idempotent.
	Kill func()
}
