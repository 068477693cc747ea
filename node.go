package ethaccount

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/internal/account"
	"github.com/dep2p/go-ethaccount/internal/core/host"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/lib/crypto"
	"github.com/dep2p/go-ethaccount/pkg/lib/log"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

var logger = log.Logger("ethaccount")

// stopTimeout 关闭 Fx App 的超时
const stopTimeout = 15 * time.Second

// Node 账户节点
//
// 持有一个已部署的账户合约及其宿主。
type Node struct {
	mu     sync.Mutex
	closed bool

	app    *fx.App
	config *config.Config

	host     *host.Host
	contract types.ContractID

	eventbus      interfaces.EventBus
	initEmitter   interfaces.Emitter
	extendEmitter interfaces.Emitter

	logCloser io.Closer
}

// New 创建并启动节点
func New(ctx context.Context, opts ...Option) (*Node, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	cfg := o.toConfig()

	logCloser, err := setupLogging(cfg.Log)
	if err != nil {
		return nil, err
	}

	node := &Node{config: cfg, logCloser: logCloser}
	app, err := buildFxApp(cfg, o, node)
	if err != nil {
		node.closeLog()
		return nil, err
	}
	if err := app.Err(); err != nil {
		node.closeLog()
		return nil, fmt.Errorf("build app: %w", err)
	}
	node.app = app

	if err := app.Start(ctx); err != nil {
		node.closeLog()
		return nil, fmt.Errorf("start: %w", err)
	}

	logger.Info("节点已启动",
		"contract", node.contract.ShortString(),
		"dataDir", cfg.Storage.DataDir,
		"ledger", node.host.Ledger().Current())
	return node, nil
}

// setupLogging 按配置设置全局日志
func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	levels, err := log.ParseLevels(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.File == "" {
		log.Setup(os.Stderr, cfg.Format, levels)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Setup(f, cfg.Format, levels)
	return f, nil
}

func (n *Node) closeLog() {
	if n.logCloser != nil {
		_ = n.logCloser.Close()
		n.logCloser = nil
	}
}

// bindEvents 创建 Node 自身的事件发射器
func (n *Node) bindEvents(bus interfaces.EventBus) error {
	var err error
	n.eventbus = bus
	if n.initEmitter, err = bus.Emitter(new(types.EvtAccountInitialized)); err != nil {
		return err
	}
	n.extendEmitter, err = bus.Emitter(new(types.EvtLeasesExtended))
	return err
}

// Subscribe 订阅事件
//
// 可订阅 types.EvtAuthorization、types.EvtAccountInitialized、
// types.EvtLeasesExtended、types.EvtLedgerAdvanced。
func (n *Node) Subscribe(eventType interface{}, opts ...interfaces.SubscriptionOpt) (interfaces.Subscription, error) {
	return n.eventbus.Subscribe(eventType, opts...)
}

// ════════════════════════════════════════════════════════════════════════════
//                              查询
// ════════════════════════════════════════════════════════════════════════════

// ContractID 返回账户合约地址
func (n *Node) ContractID() types.ContractID {
	return n.contract
}

// Config 返回节点配置
func (n *Node) Config() *config.Config {
	return n.config
}

// NetworkPassphrase 返回网络口令
func (n *Node) NetworkPassphrase() string {
	return n.host.Config().NetworkPassphrase
}

// Ledger 返回当前账本
func (n *Node) Ledger() uint32 {
	return n.host.Ledger().Current()
}

// Leases 返回账户的租约汇总，Entry 为凭据条目
func (n *Node) Leases() (*LeaseReport, error) {
	return n.host.LeaseReport(n.contract, account.CredentialKey)
}

// Deployments 列出数据目录中的全部合约部署
//
// 不同 salt 打开同一数据目录会留下多个部署。
func (n *Node) Deployments() ([]*Deployment, error) {
	return n.host.Deployer().List()
}

// Signer 返回已存储的签名者地址
func (n *Node) Signer(ctx context.Context) (types.Identity, error) {
	var id types.Identity
	err := n.host.Invoke(ctx, func(inv *host.Invocation) error {
		var err error
		id, err = account.New(inv.Env(n.contract)).Signer()
		return err
	})
	return id, err
}

// ════════════════════════════════════════════════════════════════════════════
//                              账户操作
// ════════════════════════════════════════════════════════════════════════════

// Init 存储签名者地址并补满所有租约
func (n *Node) Init(ctx context.Context, signer types.Identity) error {
	err := n.host.Invoke(ctx, func(inv *host.Invocation) error {
		return account.New(inv.Env(n.contract)).Initialize(signer)
	})
	if err != nil {
		return err
	}
	_ = n.initEmitter.Emit(types.EvtAccountInitialized{
		BaseEvent: types.NewBaseEvent(types.EventTypeAccountInitialized),
		Contract:  n.contract,
		Signer:    signer,
		Ledger:    n.Ledger(),
	})
	return nil
}

// ExtendTTL 补满所有租约
func (n *Node) ExtendTTL(ctx context.Context) error {
	err := n.host.Invoke(ctx, func(inv *host.Invocation) error {
		return account.New(inv.Env(n.contract)).ExtendTTL()
	})
	if err != nil {
		return err
	}
	_ = n.extendEmitter.Emit(types.EvtLeasesExtended{
		BaseEvent: types.NewBaseEvent(types.EventTypeLeasesExtended),
		Contract:  n.contract,
		Ledger:    n.Ledger(),
	})
	return nil
}

// NewAuthEntry 构造未签名的授权请求
//
// nonce 随机生成，过期账本为当前账本加 SignatureValidity。
func (n *Node) NewAuthEntry(ops types.AuthContext) (AuthEntry, error) {
	nonce, err := host.NewNonce()
	if err != nil {
		return AuthEntry{}, err
	}
	cfg := n.host.Config()
	validity := cfg.SignatureValidity
	if validity > cfg.MaxTTL() {
		validity = cfg.MaxTTL()
	}
	expiration := uint64(n.Ledger()) + uint64(validity)
	if expiration > math.MaxUint32 {
		expiration = math.MaxUint32
	}
	return AuthEntry{
		Nonce:               nonce,
		SignatureExpiration: uint32(expiration),
		Ops:                 ops,
	}, nil
}

// Payload 返回授权请求的签名负载
func (n *Node) Payload(entry AuthEntry) types.Hash {
	return entry.Payload(n.NetworkPassphrase())
}

// Authorize 由账户合约校验授权请求
func (n *Node) Authorize(ctx context.Context, entry AuthEntry) error {
	if err := n.host.RequireAuth(ctx, n.contract, entry); err != nil {
		logger.Debug("授权失败", "nonce", entry.Nonce, "error", err)
		return err
	}
	return nil
}

// AdvanceLedger 前进 count 个账本
func (n *Node) AdvanceLedger(ctx context.Context, count uint32) (uint32, error) {
	return n.host.AdvanceLedger(ctx, count)
}

// Close 关闭节点
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	err := multierr.Combine(
		n.initEmitter.Close(),
		n.extendEmitter.Close(),
		n.app.Stop(ctx),
	)
	logger.Info("节点已关闭")
	n.closeLog()
	return err
}

// ════════════════════════════════════════════════════════════════════════════
//                              客户端签名
// ════════════════════════════════════════════════════════════════════════════

// SignEntry 以 personal_sign 方式签名授权请求并填入声明
func SignEntry(key *crypto.PrivateKey, passphrase string, entry *AuthEntry) error {
	if key == nil {
		return ErrNilKey
	}
	sig, err := crypto.SignPersonal(key, entry.Payload(passphrase))
	if err != nil {
		return err
	}
	entry.Claim = types.SignedClaim{Identity: key.Identity(), Signature: sig}.Raw()
	return nil
}
