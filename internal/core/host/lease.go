package host

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
)

// Lease 一个租约的快照
type Lease struct {
	// LiveUntil 最后一个可访问的账本
	LiveUntil uint32 `json:"live_until"`

	// TTL 剩余账本数，已过期为 0
	TTL uint32 `json:"ttl"`

	// Live 是否仍可访问
	Live bool `json:"live"`
}

// newLease 计算 liveUntil 在账本 seq 时的快照
func newLease(liveUntil, seq uint32) Lease {
	if liveUntil < seq {
		return Lease{LiveUntil: liveUntil}
	}
	return Lease{LiveUntil: liveUntil, TTL: liveUntil - seq, Live: true}
}

// initialLiveUntil 新条目的 liveUntil
//
// 账本接近 MaxUint32 时饱和，新条目不会因回绕立即过期。
func initialLiveUntil(seq, minTTL uint32) uint32 {
	return addSat(seq, minTTL-1)
}

// addSat 饱和加法，结果不超过 MaxUint32
func addSat(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

// extendLiveUntil 按 threshold / extendTo 规则计算新的 liveUntil
//
// 剩余 TTL ≥ threshold 时不变；extendTo 被截断到 maxTTL；结果不会小于原值。
func extendLiveUntil(liveUntil, seq, threshold, extendTo, maxTTL uint32) (uint32, error) {
	if threshold > extendTo {
		return liveUntil, fmt.Errorf("%w: threshold=%d extend_to=%d", ErrInvalidTTL, threshold, extendTo)
	}
	if liveUntil < seq {
		return liveUntil, ErrEntryArchived
	}
	if liveUntil-seq >= threshold {
		return liveUntil, nil
	}
	if extendTo > maxTTL {
		extendTo = maxTTL
	}
	target := addSat(seq, extendTo)
	if target > liveUntil {
		return target, nil
	}
	return liveUntil, nil
}

// ============================================================================
//                              条目编码
// ============================================================================

// 条目记录：liveUntil(4, BE) || value
const entryHeaderSize = 4

func encodeEntry(liveUntil uint32, value []byte) []byte {
	buf := make([]byte, entryHeaderSize+len(value))
	binary.BigEndian.PutUint32(buf, liveUntil)
	copy(buf[entryHeaderSize:], value)
	return buf
}

func decodeEntry(raw []byte) (uint32, []byte, error) {
	if len(raw) < entryHeaderSize {
		return 0, nil, engine.ErrCorrupted
	}
	return binary.BigEndian.Uint32(raw), raw[entryHeaderSize:], nil
}
