package badger

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
)

// testEngine 创建测试用引擎
// 使用 t.TempDir() 创建临时目录，确保测试与生产一致
func testEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	cfg.Badger.GCInterval = 0

	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Start())

	t.Cleanup(func() {
		assert.NoError(t, e.Close())
	})

	return e
}

// ============= 基础 CRUD 测试 =============

func TestEngine_PutGet(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Put([]byte("test-key"), []byte("test-value")))

	got, err := e.Get([]byte("test-key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("test-value"), got)

	has, err := e.Has([]byte("test-key"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestEngine_GetNotFound(t *testing.T) {
	e := testEngine(t)

	_, err := e.Get([]byte("nonexistent"))
	assert.True(t, engine.IsNotFound(err))

	has, err := e.Has([]byte("nonexistent"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestEngine_Delete(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Put([]byte("k"), []byte("v")))
	require.NoError(t, e.Delete([]byte("k")))

	_, err := e.Get([]byte("k"))
	assert.True(t, engine.IsNotFound(err))

	// 删除不存在的键是幂等的
	assert.NoError(t, e.Delete([]byte("k")))
}

func TestEngine_EmptyKey(t *testing.T) {
	e := testEngine(t)

	assert.ErrorIs(t, e.Put(nil, []byte("v")), engine.ErrEmptyKey)
	_, err := e.Get(nil)
	assert.ErrorIs(t, err, engine.ErrEmptyKey)
}

// ============= 事务测试 =============

func TestEngine_UpdateAtomic(t *testing.T) {
	e := testEngine(t)

	boom := errors.New("boom")
	err := e.Update(func(txn engine.Transaction) error {
		if err := txn.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// 回调失败，写入被丢弃
	_, err = e.Get([]byte("a"))
	assert.True(t, engine.IsNotFound(err))

	err = e.Update(func(txn engine.Transaction) error {
		if err := txn.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		return txn.Set([]byte("b"), []byte("2"))
	})
	require.NoError(t, err)

	a, err := e.Get([]byte("a"))
	require.NoError(t, err)
	b, err := e.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(a))
	assert.Equal(t, "2", string(b))
}

func TestEngine_ViewIsReadOnly(t *testing.T) {
	e := testEngine(t)

	err := e.View(func(txn engine.Transaction) error {
		return txn.Set([]byte("a"), []byte("1"))
	})
	assert.True(t, engine.IsReadOnly(err))
}

// ============= 迭代器测试 =============

func TestEngine_PrefixIterator(t *testing.T) {
	e := testEngine(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, e.Put([]byte(fmt.Sprintf("p/%d", i)), []byte{byte(i)}))
	}
	require.NoError(t, e.Put([]byte("q/0"), []byte{9}))

	iter := e.NewPrefixIterator([]byte("p/"))
	defer iter.Close()

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"p/0", "p/1", "p/2"}, keys)
}

// ============= 生命周期测试 =============

func TestEngine_Closed(t *testing.T) {
	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "closed.db"))
	e, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, e.Close())
	// 重复关闭安全
	require.NoError(t, e.Close())

	_, err = e.Get([]byte("k"))
	assert.True(t, engine.IsClosed(err))
	assert.True(t, engine.IsClosed(e.Put([]byte("k"), nil)))
}

func TestEngine_Stats(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Put([]byte("a"), []byte("1")))
	require.NoError(t, e.Put([]byte("b"), []byte("2")))
	_, _ = e.Get([]byte("a"))

	stats := e.Stats()
	assert.Equal(t, int64(2), stats.KeyCount)
	assert.GreaterOrEqual(t, stats.Writes, int64(2))
	assert.GreaterOrEqual(t, stats.Reads, int64(1))
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	_, err = New(engine.DefaultConfig(""))
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}
