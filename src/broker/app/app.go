package app

import (
	"context"
	"time"

	notifier "github.com/multiedit/lsp-broker/src/broker/gateway/session-client"
	"github.com/multiedit/lsp-broker/src/broker/handler"
	"github.com/multiedit/lsp-broker/src/broker/internal/core"
	"github.com/multiedit/lsp-broker/src/broker/internal/jsonrpcfx"
	"github.com/multiedit/lsp-broker/src/broker/internal/launcher"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the broker daemon application module.
var Module = fx.Options(
	handler.Module, // inbounds
	jsonrpcfx.Module,
	launcher.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(notifier.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "lsp-broker",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
