package handler

import (
	controller "github.com/multiedit/lsp-broker/src/broker/controller"
	broker "github.com/multiedit/lsp-broker/src/broker/controller/broker"
	handler "github.com/multiedit/lsp-broker/src/broker/handler/broker"
	"github.com/multiedit/lsp-broker/src/broker/repository/session"
	"go.uber.org/fx"
)

// Module provides the broker daemon server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(m handler.Handler) {}),
	fx.Invoke(func(m broker.Controller) {}),
)
