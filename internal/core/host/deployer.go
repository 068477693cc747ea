package host

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/internal/core/storage/kv"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

var _ interfaces.Deployer = (*Deployer)(nil)

// Deployment 合约部署记录
type Deployment struct {
	Contract   types.ContractID `json:"contract"`
	CodeName   string           `json:"code_name"`
	CodeHash   types.Hash       `json:"code_hash"`
	DeployedAt uint32           `json:"deployed_at"`

	// DeploymentLiveUntil 部署记录租约
	DeploymentLiveUntil uint32 `json:"deployment_live_until"`

	// InstanceLiveUntil 合约实例租约
	InstanceLiveUntil uint32 `json:"instance_live_until"`
}

// Deployer 部署记录与代码租约
//
// 键空间：
//
//	d/contract/<合约地址> → Deployment（JSON）
//	d/code/<代码哈希>     → liveUntil(4) || 代码名
type Deployer struct {
	contracts *kv.Store
	code      *kv.Store
	ledger    *Ledger
	cfg       *Config
}

func newDeployer(root *kv.Store, ledger *Ledger, cfg *Config) *Deployer {
	return &Deployer{
		contracts: root.Sub([]byte("contract/")),
		code:      root.Sub([]byte("code/")),
		ledger:    ledger,
		cfg:       cfg,
	}
}

// ============================================================================
//                              代码
// ============================================================================

// UploadCode 登记代码并返回代码哈希
//
// 已登记且未过期的代码保持原租约；过期代码重置为 MinPersistentTTL。
func (d *Deployer) UploadCode(name string) (types.Hash, error) {
	hash := CodeHash(name)
	seq := d.ledger.Current()

	err := d.code.Update(func(tx *kv.Txn) error {
		raw, err := tx.Get(hash[:])
		if err == nil {
			liveUntil, _, err := decodeEntry(raw)
			if err != nil {
				return err
			}
			if liveUntil >= seq {
				return nil
			}
		} else if !errors.Is(err, engine.ErrNotFound) {
			return err
		}
		return tx.Set(hash[:], encodeEntry(initialLiveUntil(seq, d.cfg.MinPersistentTTL), []byte(name)))
	})
	if err != nil {
		return types.Hash{}, fmt.Errorf("upload code %s: %w", name, err)
	}
	return hash, nil
}

// codeLiveUntil 读取代码租约
func (d *Deployer) codeLiveUntil(tx *kv.Txn, hash types.Hash) (uint32, error) {
	raw, err := tx.Get(hash[:])
	if errors.Is(err, engine.ErrNotFound) {
		return 0, ErrCodeNotFound
	}
	if err != nil {
		return 0, err
	}
	liveUntil, _, err := decodeEntry(raw)
	return liveUntil, err
}

// ============================================================================
//                              部署
// ============================================================================

// Deploy 创建部署记录与合约实例
func (d *Deployer) Deploy(id types.ContractID, name string, hash types.Hash) (*Deployment, error) {
	seq := d.ledger.Current()

	var codeLive uint32
	err := d.code.View(func(tx *kv.Txn) error {
		var err error
		codeLive, err = d.codeLiveUntil(tx, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	if codeLive < seq {
		return nil, fmt.Errorf("code %s: %w", name, ErrEntryArchived)
	}

	dep := &Deployment{
		Contract:            id,
		CodeName:            name,
		CodeHash:            hash,
		DeployedAt:          seq,
		DeploymentLiveUntil: initialLiveUntil(seq, d.cfg.MinPersistentTTL),
		InstanceLiveUntil:   initialLiveUntil(seq, d.cfg.MinInstanceTTL),
	}

	err = d.contracts.Update(func(tx *kv.Txn) error {
		if _, err := tx.Get(id[:]); err == nil {
			return ErrContractExists
		} else if !errors.Is(err, engine.ErrNotFound) {
			return err
		}
		return putDeployment(tx, dep)
	})
	if err != nil {
		return nil, err
	}
	return dep, nil
}

// Get 读取部署记录
func (d *Deployer) Get(id types.ContractID) (*Deployment, error) {
	var dep *Deployment
	err := d.contracts.View(func(tx *kv.Txn) error {
		var err error
		dep, err = getDeployment(tx, id)
		return err
	})
	return dep, err
}

// List 列出所有部署记录
func (d *Deployer) List() ([]*Deployment, error) {
	var out []*Deployment
	var decodeErr error
	err := d.contracts.PrefixScan(nil, func(_, value []byte) bool {
		dep := &Deployment{}
		if err := json.Unmarshal(value, dep); err != nil {
			decodeErr = fmt.Errorf("%w: %v", engine.ErrCorrupted, err)
			return false
		}
		out = append(out, dep)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, decodeErr
}

// ExtendDeploymentTTL 延长部署记录租约
func (d *Deployer) ExtendDeploymentTTL(id types.ContractID, threshold, extendTo uint32) error {
	return d.updateDeployment(id, func(dep *Deployment, seq uint32) error {
		next, err := extendLiveUntil(dep.DeploymentLiveUntil, seq, threshold, extendTo, d.cfg.MaxTTL())
		if err != nil {
			return err
		}
		dep.DeploymentLiveUntil = next
		return nil
	})
}

// ExtendInstanceTTL 延长合约实例租约
func (d *Deployer) ExtendInstanceTTL(id types.ContractID, threshold, extendTo uint32) error {
	return d.updateDeployment(id, func(dep *Deployment, seq uint32) error {
		next, err := extendLiveUntil(dep.InstanceLiveUntil, seq, threshold, extendTo, d.cfg.MaxTTL())
		if err != nil {
			return err
		}
		dep.InstanceLiveUntil = next
		return nil
	})
}

// ExtendCodeTTL 延长合约所用代码的租约
func (d *Deployer) ExtendCodeTTL(id types.ContractID, threshold, extendTo uint32) error {
	dep, err := d.Get(id)
	if err != nil {
		return err
	}
	seq := d.ledger.Current()

	err = d.code.Update(func(tx *kv.Txn) error {
		raw, err := tx.Get(dep.CodeHash[:])
		if errors.Is(err, engine.ErrNotFound) {
			return ErrCodeNotFound
		}
		if err != nil {
			return err
		}
		liveUntil, name, err := decodeEntry(raw)
		if err != nil {
			return err
		}
		next, err := extendLiveUntil(liveUntil, seq, threshold, extendTo, d.cfg.MaxTTL())
		if err != nil {
			return err
		}
		if next == liveUntil {
			return nil
		}
		return tx.Set(dep.CodeHash[:], encodeEntry(next, name))
	})
	if err != nil {
		return fmt.Errorf("extend code ttl: %w", err)
	}
	return nil
}

// Leases 返回部署记录、代码和实例的租约快照
func (d *Deployer) Leases(id types.ContractID) (deployment, code, instance Lease, err error) {
	dep, err := d.Get(id)
	if err != nil {
		return
	}
	seq := d.ledger.Current()

	var codeLive uint32
	err = d.code.View(func(tx *kv.Txn) error {
		var err error
		codeLive, err = d.codeLiveUntil(tx, dep.CodeHash)
		return err
	})
	if err != nil {
		return
	}
	return newLease(dep.DeploymentLiveUntil, seq), newLease(codeLive, seq), newLease(dep.InstanceLiveUntil, seq), nil
}

func (d *Deployer) updateDeployment(id types.ContractID, fn func(dep *Deployment, seq uint32) error) error {
	seq := d.ledger.Current()
	return d.contracts.Update(func(tx *kv.Txn) error {
		dep, err := getDeployment(tx, id)
		if err != nil {
			return err
		}
		if err := fn(dep, seq); err != nil {
			return err
		}
		return putDeployment(tx, dep)
	})
}

func getDeployment(tx *kv.Txn, id types.ContractID) (*Deployment, error) {
	raw, err := tx.Get(id[:])
	if errors.Is(err, engine.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, id.ShortString())
	}
	if err != nil {
		return nil, err
	}
	dep := &Deployment{}
	if err := json.Unmarshal(raw, dep); err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrCorrupted, err)
	}
	return dep, nil
}

func putDeployment(tx *kv.Txn, dep *Deployment) error {
	raw, err := json.Marshal(dep)
	if err != nil {
		return err
	}
	return tx.Set(dep.Contract[:], raw)
}
