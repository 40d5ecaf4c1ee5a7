package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:access:"

var (
	blMu            sync.RWMutex
	blacklistClient *redis.Client
	local           = &memoryBlacklist{entries: map[string]time.Time{}}
)

// SetBlacklistClient configures the Redis client used for blacklist operations.
// With nil, revoked tokens are tracked in process only.
func SetBlacklistClient(c *redis.Client) {
	blMu.Lock()
	blacklistClient = c
	blMu.Unlock()
}

func client() *redis.Client {
	blMu.RLock()
	defer blMu.RUnlock()
	return blacklistClient
}

// BlacklistAccessToken revokes token until ttl elapses.
func BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if c := client(); c != nil {
		return c.Set(ctx, blacklistPrefix+token, "1", ttl).Err()
	}
	local.add(token, time.Now().Add(ttl))
	return nil
}

// IsAccessTokenBlacklisted reports whether token was revoked.
func IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if c := client(); c != nil {
		n, err := c.Exists(ctx, blacklistPrefix+token).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
	return local.has(token, time.Now()), nil
}

type memoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func (m *memoryBlacklist) add(token string, until time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for k, exp := range m.entries {
		if now.After(exp) {
			delete(m.entries, k)
		}
	}
	m.entries[token] = until
}

func (m *memoryBlacklist) has(token string, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.entries[token]
	return ok && now.Before(exp)
}
