package host

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/internal/core/storage/kv"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

var _ interfaces.Storage = (*ContractStorage)(nil)

// ContractStorage 单个合约的持久化存储
//
// 键空间 c/<合约地址>/<键>，值为带 liveUntil 头的条目记录。
type ContractStorage struct {
	contract types.ContractID
	store    *kv.Store
	ledger   *Ledger
	cfg      *Config
}

func newContractStorage(root *kv.Store, ledger *Ledger, cfg *Config, id types.ContractID) *ContractStorage {
	sub := make([]byte, 0, len(id)+1)
	sub = append(sub, id[:]...)
	sub = append(sub, '/')
	return &ContractStorage{
		contract: id,
		store:    root.Sub(sub),
		ledger:   ledger,
		cfg:      cfg,
	}
}

// load 读取条目；不存在返回 ErrEntryNotFound
func load(tx *kv.Txn, key []byte) (uint32, []byte, error) {
	raw, err := tx.Get(key)
	if errors.Is(err, engine.ErrNotFound) {
		return 0, nil, ErrEntryNotFound
	}
	if err != nil {
		return 0, nil, err
	}
	return decodeEntry(raw)
}

// Get 读取条目值
func (s *ContractStorage) Get(key []byte) ([]byte, error) {
	seq := s.ledger.Current()
	var value []byte
	err := s.store.View(func(tx *kv.Txn) error {
		liveUntil, v, err := load(tx, key)
		if err != nil {
			return err
		}
		if liveUntil < seq {
			return ErrEntryArchived
		}
		value = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set 写入条目
//
// 新条目获得 MinPersistentTTL；已有条目保持原租约；过期条目需先 Restore。
func (s *ContractStorage) Set(key, value []byte) error {
	seq := s.ledger.Current()
	err := s.store.Update(func(tx *kv.Txn) error {
		liveUntil, _, err := load(tx, key)
		switch {
		case errors.Is(err, ErrEntryNotFound):
			liveUntil = initialLiveUntil(seq, s.cfg.MinPersistentTTL)
		case err != nil:
			return err
		case liveUntil < seq:
			return ErrEntryArchived
		}
		return tx.Set(key, encodeEntry(liveUntil, value))
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Has 条目是否存在
//
// 过期条目返回 ErrEntryArchived。
func (s *ContractStorage) Has(key []byte) (bool, error) {
	seq := s.ledger.Current()
	found := false
	err := s.store.View(func(tx *kv.Txn) error {
		liveUntil, _, err := load(tx, key)
		if errors.Is(err, ErrEntryNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if liveUntil < seq {
			return ErrEntryArchived
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("has %q: %w", key, err)
	}
	return found, nil
}

// ExtendTTL 延长条目租约
func (s *ContractStorage) ExtendTTL(key []byte, threshold, extendTo uint32) error {
	seq := s.ledger.Current()
	err := s.store.Update(func(tx *kv.Txn) error {
		liveUntil, value, err := load(tx, key)
		if err != nil {
			return err
		}
		next, err := extendLiveUntil(liveUntil, seq, threshold, extendTo, s.cfg.MaxTTL())
		if err != nil {
			return err
		}
		if next == liveUntil {
			return nil
		}
		return tx.Set(key, encodeEntry(next, value))
	})
	if err != nil {
		return fmt.Errorf("extend ttl %q: %w", key, err)
	}
	return nil
}

// Restore 恢复过期条目，租约重置为 MinPersistentTTL
//
// 未过期条目不变。
func (s *ContractStorage) Restore(key []byte) error {
	seq := s.ledger.Current()
	err := s.store.Update(func(tx *kv.Txn) error {
		liveUntil, value, err := load(tx, key)
		if err != nil {
			return err
		}
		if liveUntil >= seq {
			return nil
		}
		return tx.Set(key, encodeEntry(initialLiveUntil(seq, s.cfg.MinPersistentTTL), value))
	})
	if err != nil {
		return fmt.Errorf("restore %q: %w", key, err)
	}
	return nil
}

// Lease 返回条目租约快照
func (s *ContractStorage) Lease(key []byte) (Lease, error) {
	seq := s.ledger.Current()
	var lease Lease
	err := s.store.View(func(tx *kv.Txn) error {
		liveUntil, _, err := load(tx, key)
		if err != nil {
			return err
		}
		lease = newLease(liveUntil, seq)
		return nil
	})
	return lease, err
}

// MaxTTL 平台允许的最大 TTL
func (s *ContractStorage) MaxTTL() uint32 {
	return s.cfg.MaxTTL()
}
