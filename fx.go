package ethaccount

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/internal/account"
	"github.com/dep2p/go-ethaccount/internal/core/eventbus"
	"github.com/dep2p/go-ethaccount/internal/core/host"
	"github.com/dep2p/go-ethaccount/internal/core/storage"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. storage: badger 存储引擎；eventbus: 事件总线
//  2. host: 账本、合约存储、部署与授权调度
//  3. account: 账户工厂
//  4. 注册代码并部署账户合约，注入 Node
func buildFxApp(cfg *config.Config, opts *options, node *Node) (*fx.App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(cfg),

		storage.Module(),
		eventbus.Module(),
		host.Module(),
		account.Module(),
	}

	if len(opts.fxOptions) > 0 {
		modules = append(modules, opts.fxOptions...)
	}

	modules = append(modules,
		fx.Invoke(injectNodeComponents(node, opts.salt)),

		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	return fx.New(modules...), nil
}

// nodeInjectParams Node 组件注入参数
type nodeInjectParams struct {
	fx.In

	Host     *host.Host
	Factory  interfaces.AccountFactory `name:"account_factory"`
	EventBus interfaces.EventBus
}

// injectNodeComponents 注册账户代码、部署合约并注入 Node
func injectNodeComponents(node *Node, salt []byte) func(nodeInjectParams) error {
	return func(p nodeInjectParams) error {
		if _, err := p.Host.RegisterCode(AccountCodeName, p.Factory); err != nil {
			return err
		}
		id, err := p.Host.EnsureDeployed(AccountCodeName, salt)
		if err != nil {
			return fmt.Errorf("deploy account: %w", err)
		}
		node.host = p.Host
		node.contract = id
		return node.bindEvents(p.EventBus)
	}
}
