package host

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/internal/core/storage/kv"
)

var ledgerSeqKey = []byte("seq")

// genesisLedger 新数据目录的起始账本
const genesisLedger uint32 = 1

// Ledger 当前账本序号
//
// 序号持久化在 l/seq，只能前进。
type Ledger struct {
	mu    sync.RWMutex
	store *kv.Store
	seq   uint32
}

// NewLedger 加载或初始化账本
func NewLedger(store *kv.Store) (*Ledger, error) {
	l := &Ledger{store: store, seq: genesisLedger}

	v, err := store.GetUint64(ledgerSeqKey)
	switch {
	case err == nil:
		if v > math.MaxUint32 {
			return nil, fmt.Errorf("ledger sequence %d: %w", v, engine.ErrCorrupted)
		}
		l.seq = uint32(v)
	case errors.Is(err, engine.ErrNotFound):
		if err := store.PutUint64(ledgerSeqKey, uint64(genesisLedger)); err != nil {
			return nil, fmt.Errorf("init ledger: %w", err)
		}
	default:
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return l, nil
}

// Current 返回当前账本序号
func (l *Ledger) Current() uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seq
}

// Advance 前进 n 个账本，返回新的序号
func (l *Ledger) Advance(n uint32) (uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if uint64(l.seq)+uint64(n) > math.MaxUint32 {
		return l.seq, fmt.Errorf("ledger sequence overflow")
	}
	next := l.seq + n
	if err := l.store.PutUint64(ledgerSeqKey, uint64(next)); err != nil {
		return l.seq, fmt.Errorf("advance ledger: %w", err)
	}
	l.seq = next
	logger.Debug("账本前进", "seq", next)
	return next, nil
}
