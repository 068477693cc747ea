// Package lib 包含基础设施工具库
//
// 本目录包含与架构组件无关的通用工具库：
//
//   - crypto: keccak-256、secp256k1 签名与恢复、密钥库
//   - log: 日志封装
//
// # 与 pkg/ 其他目录的关系
//
//   - interfaces/: 组件公共接口
//   - types/: 公共类型定义
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-ethaccount/pkg/lib/crypto"
//	    "github.com/dep2p/go-ethaccount/pkg/lib/log"
//	)
package lib
