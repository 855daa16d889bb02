package broker

import (
	"context"

	"github.com/gofrs/uuid"
	controller "github.com/multiedit/lsp-broker/src/broker/controller/broker"
	"github.com/multiedit/lsp-broker/src/broker/entity"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type jsonRPCRouter struct {
	broker controller.Controller
	uuid   uuid.UUID
	stats  tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	switch req.Method() {
	// Lifecycle related methods.
	case protocol.MethodInitialize:
		return r.Initialize(ctx, reply, req)

	case protocol.MethodInitialized:
		return r.Initialized(ctx, reply, req)

	case protocol.MethodShutdown:
		return r.Shutdown(ctx, reply, req)

	case protocol.MethodExit:
		return r.Exit(ctx, reply, req)

	case entity.MethodRequestFullShutdown:
		return r.RequestFullShutdown(ctx, reply, req)

	// Language server management.
	case entity.MethodLspStart:
		return r.LspStart(ctx, reply, req)

	// Shared document methods.
	case entity.MethodSharedOpen:
		return r.SharedOpen(ctx, reply, req)

	case entity.MethodSharedClose:
		return r.SharedClose(ctx, reply, req)

	case entity.MethodSharedFocus:
		return r.SharedFocus(ctx, reply, req)

	case entity.MethodSharedEdit:
		return r.SharedEdit(ctx, reply, req)

	case entity.MethodSharedResync:
		return r.SharedResync(ctx, reply, req)

	case entity.MethodS2CReply:
		return r.S2CReply(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
