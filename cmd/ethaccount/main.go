// Package main 提供 ethaccount 命令行入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dep2p/go-ethaccount"
	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/pkg/lib/log"
)

var logger = log.Logger("ethaccount/cmd")

// errUsage 参数错误，已打印用法
var errUsage = errors.New("usage error")

// command 子命令
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *cmdEnv, args []string) error
}

var commands = []command{
	{"keygen", "生成签名私钥并存入密钥库", runKeygen},
	{"address", "显示密钥库中私钥的以太坊地址", runAddress},
	{"sign", "构造授权请求并签名（输出 JSON）", runSign},
	{"init", "绑定签名者地址", runInit},
	{"check", "校验授权请求", runCheck},
	{"extend", "补满账户所有租约", runExtend},
	{"status", "显示签名者与租约", runStatus},
	{"advance", "前进账本", runAdvance},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		os.Exit(1)
	}
}

// run 解析全局参数并分派子命令
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ethaccount", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "", "配置文件路径")
	dataDir := fs.String("data-dir", "", "数据目录（默认: ./data）")
	salt := fs.String("salt", ethaccount.DefaultSalt, "账户合约部署 salt")
	logFile := fs.String("log", "", "日志文件路径")
	logLevel := fs.String("log-level", "", "日志级别 (debug/info/warn/error，可按组件设置如 account=debug,info)")
	showVersion := fs.Bool("version", false, "显示版本信息")

	fs.Usage = func() { printUsage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	if *showVersion {
		fmt.Fprintln(stdout, ethaccount.VersionInfo())
		return nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.Storage = cfg.Storage.WithDataDir(*dataDir)
	}
	if *logFile != "" {
		cfg.Log = cfg.Log.WithFile(*logFile)
	}
	if *logLevel != "" {
		cfg.Log = cfg.Log.WithLevel(*logLevel)
	}

	env := &cmdEnv{
		config: cfg,
		salt:   *salt,
		stdout: stdout,
		stderr: stderr,
	}

	for _, c := range commands {
		if c.name == rest[0] {
			logger.Debug("执行子命令", "command", c.name)
			return c.run(ctx, env, rest[1:])
		}
	}

	fmt.Fprintf(stderr, "未知子命令: %s\n\n", rest[0])
	fs.Usage()
	return errUsage
}

// loadConfig 加载配置文件，未指定时使用默认配置
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.NewConfig(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	return cfg, nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "%s\n\n", ethaccount.VersionInfo())
	fmt.Fprintln(w, "用法: ethaccount [全局参数] <子命令> [参数]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "子命令:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "全局参数:")
	fs.PrintDefaults()
}
