package config

import (
	"fmt"

	"github.com/dep2p/go-ethaccount/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别: debug / info / warn / error
	//
	// 可按组件覆盖，例如 "account=debug,host=warn,info"。
	Level string `json:"level"`

	// Format 输出格式: text / json
	Format string `json:"format"`

	// File 日志文件路径，为空时输出到 stderr
	File string `json:"file,omitempty"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	if _, err := log.ParseLevels(c.Level); err != nil {
		return fmt.Errorf("log: invalid level %q: %w", c.Level, err)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log: invalid format %q", c.Format)
	}
	return nil
}

// WithLevel 设置日志级别
func (c LogConfig) WithLevel(level string) LogConfig {
	c.Level = level
	return c
}

// WithFile 设置日志文件
func (c LogConfig) WithFile(path string) LogConfig {
	c.File = path
	return c
}
