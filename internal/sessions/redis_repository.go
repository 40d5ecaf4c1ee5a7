package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisRepository keeps each session as a hash under <prefix><refreshToken>
// with fields adminId, createdAt and expiresAt. The key expires with the session.
type RedisRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisRepository returns a repository using prefix, "session:" when empty.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisRepository{client: client, prefix: prefix, now: func() time.Time { return time.Now().UTC() }}
}

func (r *RedisRepository) key(refresh string) string {
	return r.prefix + refresh
}

// Create stores s. A session that is already expired is not written.
func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	now := r.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	ttl := s.ttl(now)
	if ttl == 0 {
		return nil
	}
	k := r.key(s.RefreshToken)
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, k,
			"adminId", s.AdminID,
			"createdAt", s.CreatedAt.Format(time.RFC3339Nano),
			"expiresAt", s.ExpiresAt.Format(time.RFC3339Nano),
		)
		p.PExpire(ctx, k, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *RedisRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	k := r.key(refresh)
	h, err := r.client.HGetAll(ctx, k).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(h) == 0 {
		return nil, nil
	}
	s := Session{RefreshToken: refresh, AdminID: h["adminId"]}
	if s.CreatedAt, err = time.Parse(time.RFC3339Nano, h["createdAt"]); err != nil {
		return nil, fmt.Errorf("session %s: createdAt: %w", k, err)
	}
	if s.ExpiresAt, err = time.Parse(time.RFC3339Nano, h["expiresAt"]); err != nil {
		return nil, fmt.Errorf("session %s: expiresAt: %w", k, err)
	}
	if s.expired(r.now()) {
		_ = r.client.Del(ctx, k).Err()
		return nil, nil
	}
	return &s, nil
}

func (r *RedisRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	return r.client.Del(ctx, r.key(refresh)).Err()
}
