package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/ports"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStore(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "user_profile_alice", []byte(`{"userId":"alice"}`)))
		got, err := s.Get(ctx, "user_profile_alice")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"userId":"alice"}`), got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", []byte("v")))
		require.NoError(t, s.Delete(ctx, "k"))
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})
}

func TestRedisStoreNamespacesKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "org_threats_org-1", []byte("[]")))

	got, err := mr.Get("baitblock:org_threats_org-1")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestRedisStoreConnectFailure(t *testing.T) {
	_, err := NewRedisStore("127.0.0.1:1", "", 0, zap.NewNop())
	assert.Error(t, err)
}
