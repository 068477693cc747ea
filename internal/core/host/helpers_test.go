package host

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/internal/core/storage"
	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
)

const testPassphrase = "Test SDF Network ; September 2015"

// testConfig 缩短的租约参数，便于推进账本
func testConfig() *Config {
	return &Config{
		NetworkPassphrase: testPassphrase,
		MaxEntryTTL:       100,
		MinPersistentTTL:  10,
		MinInstanceTTL:    5,
		SignatureValidity: 20,
	}
}

func newTestEngine(t *testing.T) engine.InternalEngine {
	t.Helper()
	eng, err := storage.New(filepath.Join(t.TempDir(), "host.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

// newTestHost 创建并启动 Host
func newTestHost(t *testing.T) *Host {
	t.Helper()
	h, err := New(WithEngine(newTestEngine(t)), WithConfig(testConfig()))
	require.NoError(t, err)
	require.NoError(t, h.Start(context.Background()))
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func advance(t *testing.T, h *Host, n uint32) uint32 {
	t.Helper()
	seq, err := h.AdvanceLedger(context.Background(), n)
	require.NoError(t, err)
	return seq
}
