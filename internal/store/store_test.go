package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	N int `json:"n"`
}

func newRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := NewRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func implementations(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemory(),
		"redis":  newRedis(t),
	}
}

func TestGetPut(t *testing.T) {
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var d doc
			found, err := s.Get(ctx, "missing", &d)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.Put(ctx, "k", doc{N: 7}))
			found, err = s.Get(ctx, "k", &d)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, 7, d.N)

			require.NoError(t, s.Delete(ctx, "k"))
			found, err = s.Get(ctx, "k", &d)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestAppendTrimsOldest(t *testing.T) {
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 1; i <= 5; i++ {
				require.NoError(t, s.Append(ctx, "list", doc{N: i}, 3))
			}
			items, err := s.List(ctx, "list")
			require.NoError(t, err)
			require.Len(t, items, 3)

			var got []int
			for _, raw := range items {
				var d doc
				require.NoError(t, json.Unmarshal(raw, &d))
				got = append(got, d.N)
			}
			assert.Equal(t, []int{3, 4, 5}, got)
		})
	}
}

func TestAppendUnbounded(t *testing.T) {
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 4; i++ {
				require.NoError(t, s.Append(ctx, "all", doc{N: i}, 0))
			}
			items, err := s.List(ctx, "all")
			require.NoError(t, err)
			assert.Len(t, items, 4)
		})
	}
}

func TestRemoveOneEntry(t *testing.T) {
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Append(ctx, "l", doc{N: 1}, 10))
			require.NoError(t, s.Append(ctx, "l", doc{N: 2}, 10))
			require.NoError(t, s.Append(ctx, "l", doc{N: 3}, 10))

			items, err := s.List(ctx, "l")
			require.NoError(t, err)
			require.NoError(t, s.Remove(ctx, "l", items[1]))

			items, err = s.List(ctx, "l")
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.JSONEq(t, `{"n":1}`, string(items[0]))
			assert.JSONEq(t, `{"n":3}`, string(items[1]))
		})
	}
}

func TestNewRedisFailsFast(t *testing.T) {
	_, err := NewRedis("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
