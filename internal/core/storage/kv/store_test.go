package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/internal/core/storage/engine/badger"
)

// testEngine 创建测试用引擎
func testEngine(t *testing.T) engine.InternalEngine {
	t.Helper()

	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	eng, err := badger.New(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, eng.Close())
	})
	return eng
}

func TestStore_PrefixIsolation(t *testing.T) {
	eng := testEngine(t)
	a := New(eng, []byte("a/"))
	b := New(eng, []byte("b/"))

	require.NoError(t, a.Put([]byte("k"), []byte("from-a")))
	require.NoError(t, b.Put([]byte("k"), []byte("from-b")))

	va, err := a.Get([]byte("k"))
	require.NoError(t, err)
	vb, err := b.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "from-a", string(va))
	assert.Equal(t, "from-b", string(vb))

	// 实际键带前缀
	raw, err := eng.Get([]byte("a/k"))
	require.NoError(t, err)
	assert.Equal(t, "from-a", string(raw))
}

func TestStore_Sub(t *testing.T) {
	eng := testEngine(t)
	root := New(eng, []byte("c/"))
	sub := root.Sub([]byte("x/"))

	require.NoError(t, sub.Put([]byte("pk"), []byte("v")))

	raw, err := eng.Get([]byte("c/x/pk"))
	require.NoError(t, err)
	assert.Equal(t, "v", string(raw))
	assert.Equal(t, []byte("c/x/"), sub.Prefix())
}

func TestStore_Uint64(t *testing.T) {
	s := New(testEngine(t), []byte("l/"))

	_, err := s.GetUint64([]byte("seq"))
	assert.True(t, engine.IsNotFound(err))

	require.NoError(t, s.PutUint64([]byte("seq"), 42))
	v, err := s.GetUint64([]byte("seq"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	require.NoError(t, s.Put([]byte("bad"), []byte{1, 2}))
	_, err = s.GetUint64([]byte("bad"))
	assert.True(t, engine.IsCorrupted(err))
}

func TestStore_Update(t *testing.T) {
	s := New(testEngine(t), []byte("t/"))

	err := s.Update(func(tx *Txn) error {
		if err := tx.Set([]byte("v"), []byte("value")); err != nil {
			return err
		}
		return tx.SetUint64([]byte("ttl"), 100)
	})
	require.NoError(t, err)

	err = s.View(func(tx *Txn) error {
		v, err := tx.Get([]byte("v"))
		if err != nil {
			return err
		}
		assert.Equal(t, "value", string(v))

		ttl, err := tx.GetUint64([]byte("ttl"))
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(100), ttl)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_PrefixScan(t *testing.T) {
	s := New(testEngine(t), []byte("n/"))

	require.NoError(t, s.Put([]byte("x/1"), []byte("a")))
	require.NoError(t, s.Put([]byte("x/2"), []byte("b")))
	require.NoError(t, s.Put([]byte("y/1"), []byte("c")))

	var keys []string
	err := s.PrefixScan([]byte("x/"), func(key, _ []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x/1", "x/2"}, keys)

	// 提前停止
	count := 0
	err = s.PrefixScan(nil, func(_, _ []byte) bool {
		count++
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
