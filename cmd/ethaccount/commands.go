package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dep2p/go-ethaccount"
	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/internal/account"
	"github.com/dep2p/go-ethaccount/pkg/lib/crypto"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

// defaultKeyName 默认密钥名
const defaultKeyName = "signer"

// cmdEnv 子命令共享环境
type cmdEnv struct {
	config *config.Config
	salt   string
	stdout io.Writer
	stderr io.Writer
}

// openNode 按当前配置启动节点
func (e *cmdEnv) openNode(ctx context.Context) (*ethaccount.Node, error) {
	return ethaccount.New(ctx,
		ethaccount.WithConfig(e.config),
		ethaccount.WithSalt(e.salt),
	)
}

// keystore 打开密钥库
func (e *cmdEnv) keystore() (crypto.Keystore, error) {
	ks := e.config.Keystore
	dir := ks.Dir
	if dir == "" {
		dir = e.config.Storage.KeysPath()
	}

	var password []byte
	if ks.Encrypt {
		pw := os.Getenv(ks.PasswordEnv)
		if pw == "" {
			return nil, fmt.Errorf("环境变量 %s 未设置密钥口令", ks.PasswordEnv)
		}
		password = []byte(pw)
	}
	return crypto.NewFSKeystore(dir, password)
}

func (e *cmdEnv) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 密钥
// ═══════════════════════════════════════════════════════════════════════════

func runKeygen(_ context.Context, e *cmdEnv, args []string) error {
	fs := e.newFlagSet("keygen")
	name := fs.String("name", defaultKeyName, "密钥名")
	importHex := fs.String("import", "", "导入十六进制私钥（不生成新密钥）")
	force := fs.Bool("force", false, "覆盖已存在的密钥")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ks, err := e.keystore()
	if err != nil {
		return err
	}
	exists, err := ks.Has(*name)
	if err != nil {
		return err
	}
	if exists && !*force {
		return fmt.Errorf("密钥 %q 已存在（使用 -force 覆盖）", *name)
	}

	var key *crypto.PrivateKey
	if *importHex != "" {
		key, err = crypto.ParsePrivateKey(*importHex)
	} else {
		key, err = crypto.GenerateKey()
	}
	if err != nil {
		return err
	}
	defer key.Zero()

	if exists {
		if err := ks.Delete(*name); err != nil {
			return err
		}
	}
	if err := ks.Put(*name, key); err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, key.Identity().String())
	return nil
}

func runAddress(_ context.Context, e *cmdEnv, args []string) error {
	fs := e.newFlagSet("address")
	name := fs.String("name", defaultKeyName, "密钥名")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	key, err := e.loadKey(*name)
	if err != nil {
		return err
	}
	defer key.Zero()

	fmt.Fprintln(e.stdout, key.Identity().String())
	return nil
}

func (e *cmdEnv) loadKey(name string) (*crypto.PrivateKey, error) {
	ks, err := e.keystore()
	if err != nil {
		return nil, err
	}
	key, err := ks.Get(name)
	if err != nil {
		return nil, fmt.Errorf("读取密钥 %q: %w", name, err)
	}
	return key, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 授权
// ═══════════════════════════════════════════════════════════════════════════

// stringList 可重复的字符串参数
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func runSign(ctx context.Context, e *cmdEnv, args []string) error {
	fs := e.newFlagSet("sign")
	name := fs.String("name", defaultKeyName, "签名密钥名")
	target := fs.String("contract", "", "被调用合约地址（十六进制，默认为账户合约）")
	function := fs.String("fn", "transfer", "被调用函数名")
	out := fs.String("out", "", "输出文件（默认标准输出）")
	var rawArgs stringList
	fs.Var(&rawArgs, "arg", "十六进制参数，可重复")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	key, err := e.loadKey(*name)
	if err != nil {
		return err
	}
	defer key.Zero()

	node, err := e.openNode(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	op := types.Operation{
		Kind:     types.OperationContractCall,
		Contract: node.ContractID(),
		Function: *function,
	}
	if *target != "" {
		if op.Contract, err = types.ParseContractID(*target); err != nil {
			return fmt.Errorf("合约地址: %w", err)
		}
	}
	for _, a := range rawArgs {
		b, err := hex.DecodeString(strings.TrimPrefix(a, "0x"))
		if err != nil {
			return fmt.Errorf("参数 %q: %w", a, err)
		}
		op.Args = append(op.Args, b)
	}

	entry, err := node.NewAuthEntry(types.AuthContext{op})
	if err != nil {
		return err
	}
	if err := ethaccount.SignEntry(key, node.NetworkPassphrase(), &entry); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Fprintln(e.stdout, string(data))
		return nil
	}
	return os.WriteFile(*out, append(data, '\n'), 0o600)
}

func runCheck(ctx context.Context, e *cmdEnv, args []string) error {
	fs := e.newFlagSet("check")
	in := fs.String("entry", "-", "授权请求 JSON 文件（- 为标准输入）")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	entry, err := readEntry(*in)
	if err != nil {
		return err
	}

	node, err := e.openNode(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	if err := node.Authorize(ctx, entry); err != nil {
		var accErr account.Error
		if errors.As(err, &accErr) {
			return fmt.Errorf("授权拒绝 (code %d): %w", accErr.Code(), err)
		}
		return fmt.Errorf("授权拒绝: %w", err)
	}
	fmt.Fprintln(e.stdout, "authorized")
	return nil
}

func readEntry(path string) (ethaccount.AuthEntry, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return ethaccount.AuthEntry{}, err
	}

	var entry ethaccount.AuthEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return ethaccount.AuthEntry{}, fmt.Errorf("解析授权请求: %w", err)
	}
	return entry, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 账户与租约
// ═══════════════════════════════════════════════════════════════════════════

func runInit(ctx context.Context, e *cmdEnv, args []string) error {
	fs := e.newFlagSet("init")
	address := fs.String("address", "", "签名者以太坊地址（默认使用 -name 密钥的地址）")
	name := fs.String("name", defaultKeyName, "密钥名")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var signer types.Identity
	if *address != "" {
		id, err := types.ParseIdentity(*address)
		if err != nil {
			return err
		}
		signer = id
	} else {
		key, err := e.loadKey(*name)
		if err != nil {
			return err
		}
		signer = key.Identity()
		key.Zero()
	}

	node, err := e.openNode(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	if err := node.Init(ctx, signer); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "contract %s signer %s\n", node.ContractID(), signer)
	return nil
}

func runExtend(ctx context.Context, e *cmdEnv, args []string) error {
	if err := parseFlags(e.newFlagSet("extend"), args); err != nil {
		return err
	}

	node, err := e.openNode(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	if err := node.ExtendTTL(ctx); err != nil {
		return err
	}
	return printLeases(e.stdout, node)
}

func runStatus(ctx context.Context, e *cmdEnv, args []string) error {
	if err := parseFlags(e.newFlagSet("status"), args); err != nil {
		return err
	}

	node, err := e.openNode(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	signer, err := node.Signer(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(e.stdout, "signer    %s\n", signer)
	case errors.Is(err, account.ErrUnknownSigner):
		fmt.Fprintln(e.stdout, "signer    (not initialized)")
	default:
		fmt.Fprintf(e.stdout, "signer    (%v)\n", err)
	}
	if err := printLeases(e.stdout, node); err != nil {
		return err
	}
	return printDeployments(e.stdout, node)
}

func runAdvance(ctx context.Context, e *cmdEnv, args []string) error {
	fs := e.newFlagSet("advance")
	count := fs.Uint64("n", 1, "前进的账本数")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *count > math.MaxUint32 {
		return fmt.Errorf("advance: -n %d exceeds %d", *count, uint32(math.MaxUint32))
	}

	node, err := e.openNode(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	seq, err := node.AdvanceLedger(ctx, uint32(*count))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "ledger %d\n", seq)
	return nil
}

func printLeases(w io.Writer, node *ethaccount.Node) error {
	report, err := node.Leases()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "contract  %s\n", report.Contract)
	fmt.Fprintf(w, "ledger    %d (max ttl %d)\n", report.Ledger, report.MaxTTL)
	printLease(w, "credential", report.Entry)
	printLease(w, "deployment", &report.Deployment)
	printLease(w, "code", &report.Code)
	printLease(w, "instance", &report.Instance)
	return nil
}

func printDeployments(w io.Writer, node *ethaccount.Node) error {
	deps, err := node.Deployments()
	if err != nil {
		return err
	}
	seq := node.Ledger()
	fmt.Fprintf(w, "deployments %d\n", len(deps))
	for _, d := range deps {
		state := "live"
		if d.InstanceLiveUntil < seq {
			state = "archived"
		}
		fmt.Fprintf(w, "  %s %s %s\n", d.Contract.ShortString(), d.CodeName, state)
	}
	return nil
}

func printLease(w io.Writer, name string, l *ethaccount.Lease) {
	switch {
	case l == nil:
		fmt.Fprintf(w, "  %-10s missing\n", name)
	case !l.Live:
		fmt.Fprintf(w, "  %-10s archived (live until %d)\n", name, l.LiveUntil)
	default:
		fmt.Fprintf(w, "  %-10s ttl %d (live until %d)\n", name, l.TTL, l.LiveUntil)
	}
}
