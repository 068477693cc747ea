// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Storage.DataDir = "/var/lib/ethaccount"
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
//
//	// 从文件加载
//	cfg, err := config.LoadFile("ethaccount.json")
package config

// Config 是 ethaccount 的完整配置结构
//
// 配置按照功能模块组织：
//   - Storage: 持久化存储（BadgerDB）
//   - Ledger: 账本与租约参数
//   - Keystore: 签名密钥文件
//   - Log: 日志输出
type Config struct {
	// Storage 存储配置
	Storage StorageConfig `json:"storage"`

	// Ledger 账本配置
	Ledger LedgerConfig `json:"ledger"`

	// Keystore 密钥库配置
	Keystore KeystoreConfig `json:"keystore"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，适用于大多数场景。
func NewConfig() *Config {
	return &Config{
		Storage:  DefaultStorageConfig(),
		Ledger:   DefaultLedgerConfig(),
		Keystore: DefaultKeystoreConfig(),
		Log:      DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Ledger.Validate(); err != nil {
		return err
	}
	if err := c.Keystore.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
