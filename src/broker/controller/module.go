// Package controller aggregates the daemon's controllers into one fx module.
package controller

import (
	broker "github.com/multiedit/lsp-broker/src/broker/controller/broker"
	"github.com/multiedit/lsp-broker/src/broker/controller/routing"
	"github.com/multiedit/lsp-broker/src/broker/controller/sharedstate"
	"go.uber.org/fx"
)

// Module provides all controllers to the fx application.
var Module = fx.Options(
	fx.Provide(broker.New),
	fx.Provide(routing.New),
	fx.Provide(sharedstate.New),
)
