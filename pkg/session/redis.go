package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key layout in Redis:
//
//	planwright:session:<id>       JSON session, key TTL = session TTL
//	planwright:plan_sessions:<id> set of session IDs on the plan
//
// The per-plan set cannot expire member-by-member, so stale members are
// pruned whenever ByPlan reads them.
const (
	sessionKeyPrefix = "planwright:session:"
	planKeyPrefix    = "planwright:plan_sessions:"

	// planIndexTTL bounds the per-plan set itself so abandoned plans do
	// not leak sets forever. Refreshed on every Set.
	planIndexTTL = 24 * time.Hour
)

// RedisStore keeps sessions in Redis, one key per session with a
// native TTL.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves a session by ID.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return &s, nil
}

// Set stores a session with a key TTL matching its expiration and adds
// it to its plan's index set.
func (r *RedisStore) Set(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+s.ID, data, ttl)
	pipe.SAdd(ctx, planKeyPrefix+s.PlanID, s.ID)
	pipe.Expire(ctx, planKeyPrefix+s.PlanID, planIndexTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Touch extends a live session's expiration by ttl from now.
func (r *RedisStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	s, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	s.ExpiresAt = time.Now().Add(ttl)
	return r.Set(ctx, s)
}

// Delete removes a session and its index entry.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	s, err := r.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id)
	if err == nil {
		pipe.SRem(ctx, planKeyPrefix+s.PlanID, id)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// ByPlan lists the live sessions on a plan, pruning index entries whose
// session key has expired.
func (r *RedisStore) ByPlan(ctx context.Context, planID string) ([]*Session, error) {
	ids, err := r.client.SMembers(ctx, planKeyPrefix+planID).Result()
	if err != nil {
		return nil, err
	}
	var out []*Session
	var stale []any
	for _, id := range ids {
		s, err := r.Get(ctx, id)
		switch {
		case err == nil:
			out = append(out, s)
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
			stale = append(stale, id)
		default:
			return nil, err
		}
	}
	if len(stale) > 0 {
		_ = r.client.SRem(ctx, planKeyPrefix+planID, stale...).Err()
	}
	return out, nil
}

// Cleanup is a no-op: Redis expires session keys natively and ByPlan
// prunes the index sets.
func (r *RedisStore) Cleanup(ctx context.Context) error { return nil }

// Close closes the Redis connection.
func (r *RedisStore) Close() error { return r.client.Close() }

var _ Store = (*RedisStore)(nil)
