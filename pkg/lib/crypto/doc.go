// Package crypto 提供以太坊风格签名方所需的密码学工具
//
// 本包提供 keccak-256 哈希、secp256k1 密钥、可恢复签名、公钥恢复以及
// 加密密钥文件存储。
//
// # 快速开始
//
// 生成密钥并取得以太坊地址：
//
//	key, err := crypto.GenerateKey()
//	addr := key.Identity()
//
// 对授权负载做 personal_sign 签名：
//
//	sig, err := crypto.SignPersonal(key, payload)
//
// 从签名恢复公钥（宿主侧能力）：
//
//	var r crypto.Secp256k1Recoverer
//	pub, err := r.Secp256k1Recover(digest, core, parity)
//
// 密钥存储：
//
//	ks, err := crypto.NewFSKeystore("/path/to/keys", password)
//	err = ks.Put("signer", key)
//	key, err := ks.Get("signer")
//
// # 安全特性
//
//   - 签名使用 RFC 6979 确定性 nonce，且总是低 S
//   - 恢复时拒绝高 S 签名
//   - AES-GCM + Argon2id 加密存储
//   - 安全清零敏感数据
//
// # 架构层
//
//   - 层级：pkg（公共包）
//   - 依赖：pkg/types
package crypto
