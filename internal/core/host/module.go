package host

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	// 配置
	UnifiedCfg *config.Config `optional:"true"`

	// 必需依赖
	Engine engine.InternalEngine

	// 可选依赖
	EventBus interfaces.EventBus `optional:"true"`
}

// ModuleOutput 模块输出
type ModuleOutput struct {
	fx.Out

	Host *Host
}

// ProvideHost 提供 Host 服务
func ProvideHost(input ModuleInput) (ModuleOutput, error) {
	host, err := New(
		WithEngine(input.Engine),
		WithConfig(ConfigFromUnified(input.UnifiedCfg)),
		WithEventBus(input.EventBus),
	)
	if err != nil {
		return ModuleOutput{}, err
	}
	return ModuleOutput{Host: host}, nil
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("host",
		fx.Provide(ProvideHost),
		fx.Invoke(registerLifecycle),
	)
}

// lifecycleInput Lifecycle 注册输入
type lifecycleInput struct {
	fx.In
	LC   fx.Lifecycle
	Host *Host
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return input.Host.Start(ctx)
		},
		OnStop: func(_ context.Context) error {
			return input.Host.Close()
		},
	})
}
