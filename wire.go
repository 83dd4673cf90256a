//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/tjjh89017/fxsandbox/internal/config"
	"github.com/tjjh89017/fxsandbox/internal/ctrl"
	"github.com/tjjh89017/fxsandbox/internal/daemon"
	"github.com/tjjh89017/fxsandbox/internal/driver"
	"github.com/tjjh89017/fxsandbox/internal/effects"
	"github.com/tjjh89017/fxsandbox/internal/logger"
	"github.com/tjjh89017/fxsandbox/internal/metrics"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/repo"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
)

var registrySet = wire.NewSet(
	effects.Builtins,
	plugin.DefaultSet,
	provideRegistry,
)

func setup(ctx context.Context) (*daemon.Daemon, error) {
	wire.Build(
		config.Load,
		logger.DefaultSet,
		registrySet,
		wire.Bind(new(ctrl.PluginResolver), new(*plugin.Registry)),
		repo.DefaultSet,
		metrics.DefaultSet,
		ctrl.DefaultSet,
		driver.DefaultSet,
		daemon.DefaultSet,
	)

	return nil, nil
}

func setupRegistry(ctx context.Context) (*plugin.Registry, error) {
	wire.Build(
		config.Load,
		logger.DefaultSet,
		registrySet,
	)

	return nil, nil
}

func provideRegistry(ctx context.Context, manager *plugin.Manager, config *config.Config) (*plugin.Registry, error) {
	return manager.LoadRegistry(ctx, config.Plugins, plugin.WithAttachmentPoints(scaffold.AttachmentPoints()...))
}
