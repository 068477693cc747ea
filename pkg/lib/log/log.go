// Package log 提供 ethaccount 统一日志接口
//
// 基于 log/slog。各组件通过 log.Logger("组件名") 获取懒加载 logger，
// 级别可按组件单独设置：
//
//	account=debug,host=warn,info
//
// 最后一个不带组件名的项为默认级别。
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// 日志级别常量
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Levels 默认级别与按组件覆盖的级别
type Levels struct {
	Default    slog.Level
	Components map[string]slog.Level
}

// For 返回组件的生效级别
func (l Levels) For(component string) slog.Level {
	if lv, ok := l.Components[component]; ok {
		return lv
	}
	return l.Default
}

// lowest 所有级别中的最低值，用作 handler 的门限
func (l Levels) lowest() slog.Level {
	low := l.Default
	for _, lv := range l.Components {
		if lv < low {
			low = lv
		}
	}
	return low
}

var current atomic.Pointer[Levels]

// ParseLevel 解析单个级别名称（debug/info/warn/error，大小写不敏感）
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("log: unknown level %q", name)
}

// ParseLevels 解析级别描述
//
// 格式为逗号分隔的 "组件=级别" 与可选的默认级别，例如 "account=debug,info"。
// 未给出默认级别时为 info。
func ParseLevels(spec string) (Levels, error) {
	out := Levels{Default: LevelInfo}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, level, ok := strings.Cut(part, "=")
		if !ok {
			lv, err := ParseLevel(part)
			if err != nil {
				return Levels{}, err
			}
			out.Default = lv
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return Levels{}, fmt.Errorf("log: empty component in %q", part)
		}
		lv, err := ParseLevel(level)
		if err != nil {
			return Levels{}, err
		}
		if out.Components == nil {
			out.Components = make(map[string]slog.Level)
		}
		out.Components[name] = lv
	}
	return out, nil
}

// Setup 重建默认 logger
//
// format 为 "json" 时输出 JSON，其余情况输出文本。
func Setup(w io.Writer, format string, levels Levels) {
	opts := &slog.HandlerOptions{Level: levels.lowest()}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	current.Store(&levels)
	slog.SetDefault(slog.New(h))
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次调用都使用当前的 slog.Default()，Setup 之后立即生效。
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Enabled 组件在该级别是否输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return level >= current.Load().For(l.component)
}

func (l *LazyLogger) log(level slog.Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().With("component", l.component).Log(context.Background(), level, msg, args...)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) { l.log(LevelInfo, msg, args...) }

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) { l.log(LevelWarn, msg, args...) }

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

func init() {
	Setup(os.Stderr, "text", Levels{Default: LevelInfo})
}
