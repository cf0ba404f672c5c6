package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideMissThenHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *cachedUser) func() error {
		return func() error {
			loads++
			*dest = cachedUser{ID: 7, FullName: "Cached User"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, load(&first)))
	assert.Equal(t, 1, loads)
	assert.Equal(t, "Cached User", first.FullName)

	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, load(&second)))
	assert.Equal(t, 1, loads, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestAsideLoaderErrorIsNotCached(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var dest cachedUser
	loadErr := errors.New("db unavailable")
	err := Aside(ctx, UserKey(8), &dest, UserTTL, func() error { return loadErr })
	require.ErrorIs(t, err, loadErr)
	assert.False(t, mr.Exists(UserKey(8)))
}

func TestAsideCorruptEntryFallsThroughToLoader(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(9), "not-json{"))

	var dest cachedUser
	err := Aside(ctx, UserKey(9), &dest, UserTTL, func() error {
		dest = cachedUser{ID: 9, FullName: "Reloaded"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Reloaded", dest.FullName)
}

func TestAsideWithoutClientCallsLoader(t *testing.T) {
	SetClient(nil)

	var dest cachedUser
	err := Aside(context.Background(), UserKey(1), &dest, time.Minute, func() error {
		dest = cachedUser{ID: 1, FullName: "No Cache"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "No Cache", dest.FullName)
}

func TestInvalidateUserRemovesEntry(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var dest cachedUser
	require.NoError(t, Aside(ctx, UserKey(5), &dest, UserTTL, func() error {
		dest = cachedUser{ID: 5}
		return nil
	}))
	require.True(t, mr.Exists(UserKey(5)))

	InvalidateUser(ctx, 5)
	assert.False(t, mr.Exists(UserKey(5)))
}

func TestInvalidateUserMutesRemovesEntry(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	ids := []uint{}
	require.NoError(t, Aside(ctx, UserMutesKey(5), &ids, UserMutesTTL, func() error {
		ids = []uint{2, 3}
		return nil
	}))
	require.True(t, mr.Exists(UserMutesKey(5)))

	InvalidateUserMutes(ctx, 5)
	assert.False(t, mr.Exists(UserMutesKey(5)))
}
