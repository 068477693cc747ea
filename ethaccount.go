package ethaccount

import (
	"github.com/dep2p/go-ethaccount/internal/core/host"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "ethaccount " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// AccountCodeName 账户合约代码名
const AccountCodeName = "ethaccount-v1"

// DefaultSalt 默认部署 salt
const DefaultSalt = "ethaccount"

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// AuthEntry 授权请求
type AuthEntry = host.AuthEntry

// LeaseReport 租约汇总
type LeaseReport = host.LeaseReport

// Lease 单个租约快照
type Lease = host.Lease

// Deployment 合约部署记录
type Deployment = host.Deployment
