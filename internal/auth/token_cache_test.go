package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCacheSinRedisEsDirecto(t *testing.T) {
	cache := NewTokenCache(nil, NewHashRing([]string{"n1", "n2"}, 16), time.Minute)
	ctx := context.Background()

	claims, hit, err := cache.Get(ctx, "cualquier-token")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, claims)

	// 无后端时 Set 不报错，调用方不需要区分
	require.NoError(t, cache.Set(ctx, "cualquier-token", &Claims{UsuarioID: 1}))
	require.NoError(t, cache.Set(ctx, "cualquier-token", nil))
}

func TestTokenCacheClavesEstablesPorToken(t *testing.T) {
	cache := NewTokenCache(nil, NewHashRing([]string{"n1", "n2", "n3"}, 16), time.Minute)

	k1 := cache.key("token-a")
	k2 := cache.key("token-a")
	k3 := cache.key("token-b")
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, "auth:token:")
}
