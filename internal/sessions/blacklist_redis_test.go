package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestBlacklistAccessToken_IsAccessTokenBlacklisted(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer SetBlacklistClient(nil)

	ctx := context.Background()
	token := "access-token-1"
	require.NoError(t, BlacklistAccessToken(ctx, token, 2*time.Second))
	require.True(t, m.Exists(blacklistPrefix+token))

	ok, err := IsAccessTokenBlacklisted(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)

	m.FastForward(3 * time.Second)

	ok, err = IsAccessTokenBlacklisted(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBlacklist_NoClientUsesMemory(t *testing.T) {
	SetBlacklistClient(nil)
	ctx := context.Background()

	require.NoError(t, BlacklistAccessToken(ctx, "mem-token", time.Minute))
	ok, err := IsAccessTokenBlacklisted(ctx, "mem-token")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = IsAccessTokenBlacklisted(ctx, "other-token")
	require.NoError(t, err)
	require.False(t, ok)

	// already expired tokens are not recorded
	require.NoError(t, BlacklistAccessToken(ctx, "stale", -time.Second))
	ok, _ = IsAccessTokenBlacklisted(ctx, "stale")
	require.False(t, ok)
}
