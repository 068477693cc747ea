package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
)

// ============= Fx 模块测试 =============

func TestModule_Basic(t *testing.T) {
	tmpDir := t.TempDir()

	var eng engine.InternalEngine
	var cfg Config

	unifiedCfg := config.NewConfig()
	unifiedCfg.Storage.DataDir = tmpDir

	app := fxtest.New(t,
		fx.Supply(unifiedCfg),
		Module(),
		fx.Populate(&eng, &cfg),
	)

	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, eng)
	assert.Equal(t, filepath.Join(tmpDir, "ethaccount.db"), cfg.Path)

	require.NoError(t, eng.Put([]byte("k"), []byte("v")))
	got, err := eng.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestModule_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	eng, err := New(path)
	require.NoError(t, err)
	kvs := NewKVStore(eng, []byte("l/"))
	require.NoError(t, kvs.PutUint64([]byte("seq"), 7))
	require.NoError(t, eng.Close())

	// 重新打开后数据仍在
	eng, err = New(path)
	require.NoError(t, err)
	defer eng.Close()

	seq, err := NewKVStore(eng, []byte("l/")).GetUint64([]byte("seq"))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), seq)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.GCInterval = 1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "1m0s", cfg.GCInterval.String())
}
