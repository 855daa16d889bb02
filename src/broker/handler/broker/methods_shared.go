package broker

import (
	"context"

	"github.com/multiedit/lsp-broker/src/broker/mapper"
	"go.lsp.dev/jsonrpc2"
)

// LspStart requests that a language server matching the given configuration be running, starting one if needed.
func (r *jsonRPCRouter) LspStart(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToLspStartParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.broker.LspStart(ctx, params)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

// SharedOpen registers this session as a viewer of a shared document.
func (r *jsonRPCRouter) SharedOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSharedOpenParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.broker.SharedOpen(ctx, params)
	return reply(ctx, nil, err)
}

// SharedClose removes this session as a viewer of a shared document.
func (r *jsonRPCRouter) SharedClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSharedCloseParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.broker.SharedClose(ctx, params)
	return reply(ctx, nil, err)
}

// SharedFocus transfers ownership of a shared document to this session.
func (r *jsonRPCRouter) SharedFocus(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSharedFocusParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.broker.SharedFocus(ctx, params)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

// SharedEdit submits deltas for a shared document owned by this session.
func (r *jsonRPCRouter) SharedEdit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSharedEditParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.broker.SharedEdit(ctx, params)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

// SharedResync aligns this session's local copy of a document with the broker's copy.
func (r *jsonRPCRouter) SharedResync(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSharedResyncParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.broker.SharedResync(ctx, params)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

// S2CReply carries this session's reply to a server-initiated request.
func (r *jsonRPCRouter) S2CReply(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToS2CReplyParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.broker.S2CReply(ctx, params)
	return reply(ctx, nil, err)
}
