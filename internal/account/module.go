package account

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-ethaccount/pkg/interfaces"
)

// ModuleOutput 账户模块输出
type ModuleOutput struct {
	fx.Out

	// Factory 账户工厂，宿主部署合约时绑定
	Factory interfaces.AccountFactory `name:"account_factory"`
}

// ProvideFactory 提供账户工厂
func ProvideFactory() ModuleOutput {
	return ModuleOutput{Factory: Factory}
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("account",
		fx.Provide(ProvideFactory),
	)
}
