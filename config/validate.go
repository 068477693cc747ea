package config

import (
	"errors"
	"strings"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，提供更明确的语义。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 空的数据目录 -> 使用默认值
//   - 日志级别大小写 -> 转小写
//   - 空的签名有效期 -> 使用默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.Storage.DataDir == "" {
		c.Storage.DataDir = DefaultStorageConfig().DataDir
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig().Format
	}
	if c.Ledger.SignatureValidity == 0 {
		c.Ledger.SignatureValidity = DefaultLedgerConfig().SignatureValidity
	}
	if c.Ledger.NetworkPassphrase == "" {
		c.Ledger.NetworkPassphrase = DefaultLedgerConfig().NetworkPassphrase
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
