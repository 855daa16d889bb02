package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/multiedit/lsp-broker/src/broker/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// RequestToInitializeParams maps the parameters from a jsonrpc2.Request into protocol.InitializeParams.
func RequestToInitializeParams(req jsonrpc2.Request) (*protocol.InitializeParams, error) {
	params := protocol.InitializeParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToLspStartParams maps the parameters from a jsonrpc2.Request into entity.LspStartParams.
func RequestToLspStartParams(req jsonrpc2.Request) (*entity.LspStartParams, error) {
	params := entity.LspStartParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToSharedOpenParams maps the parameters from a jsonrpc2.Request into entity.SharedOpenParams.
func RequestToSharedOpenParams(req jsonrpc2.Request) (*entity.SharedOpenParams, error) {
	params := entity.SharedOpenParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToSharedCloseParams maps the parameters from a jsonrpc2.Request into entity.SharedCloseParams.
func RequestToSharedCloseParams(req jsonrpc2.Request) (*entity.SharedCloseParams, error) {
	params := entity.SharedCloseParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToSharedFocusParams maps the parameters from a jsonrpc2.Request into entity.SharedFocusParams.
func RequestToSharedFocusParams(req jsonrpc2.Request) (*entity.SharedFocusParams, error) {
	params := entity.SharedFocusParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToSharedEditParams maps the parameters from a jsonrpc2.Request into entity.SharedEditParams.
func RequestToSharedEditParams(req jsonrpc2.Request) (*entity.SharedEditParams, error) {
	params := entity.SharedEditParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToSharedResyncParams maps the parameters from a jsonrpc2.Request into entity.SharedResyncParams.
func RequestToSharedResyncParams(req jsonrpc2.Request) (*entity.SharedResyncParams, error) {
	params := entity.SharedResyncParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToS2CReplyParams maps the parameters from a jsonrpc2.Request into entity.S2CReplyParams.
func RequestToS2CReplyParams(req jsonrpc2.Request) (*entity.S2CReplyParams, error) {
	params := entity.S2CReplyParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err)
}
