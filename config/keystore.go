package config

import (
	"errors"
)

// KeystoreConfig 密钥库配置
//
// 管理签名方的 secp256k1 私钥文件。
type KeystoreConfig struct {
	// Dir 密钥目录，为空时使用 ${DataDir}/keys
	Dir string `json:"dir,omitempty"`

	// Encrypt 是否使用口令加密密钥文件
	Encrypt bool `json:"encrypt"`

	// PasswordEnv 读取口令的环境变量名
	PasswordEnv string `json:"password_env,omitempty"`
}

// DefaultKeystoreConfig 返回默认密钥库配置
func DefaultKeystoreConfig() KeystoreConfig {
	return KeystoreConfig{
		Dir:         "",
		Encrypt:     false,
		PasswordEnv: "ETHACCOUNT_KEY_PASSWORD",
	}
}

// Validate 验证密钥库配置
func (c KeystoreConfig) Validate() error {
	if c.Encrypt && c.PasswordEnv == "" {
		return errors.New("keystore: password_env required when encrypt is enabled")
	}
	return nil
}

// WithDir 设置密钥目录
func (c KeystoreConfig) WithDir(dir string) KeystoreConfig {
	c.Dir = dir
	return c
}

// WithEncrypt 设置是否加密
func (c KeystoreConfig) WithEncrypt(encrypt bool) KeystoreConfig {
	c.Encrypt = encrypt
	return c
}
