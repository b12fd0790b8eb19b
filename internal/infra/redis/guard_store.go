package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// GuardStore keeps session-scoped violation counters in Redis so multiple
// server instances observing the same team session agree on its count.
// Increments use INCR, never read-modify-write. Keys expire after the session
// TTL so abandoned sessions clean themselves up.
type GuardStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuardStore(client *redis.Client, ttl time.Duration) *GuardStore {
	return &GuardStore{client: client, ttl: ttl}
}

// Reset starts a fresh session for the team with a zero counter.
func (g *GuardStore) Reset(ctx context.Context, teamID string) error {
	return g.client.Set(ctx, g.key(teamID), 0, g.ttl).Err()
}

func (g *GuardStore) Increment(ctx context.Context, teamID string) (int, error) {
	pipe := g.client.TxPipeline()
	incr := pipe.Incr(ctx, g.key(teamID))
	if g.ttl > 0 {
		pipe.Expire(ctx, g.key(teamID), g.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (g *GuardStore) Count(ctx context.Context, teamID string) (int, error) {
	count, err := g.client.Get(ctx, g.key(teamID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (g *GuardStore) key(teamID string) string {
	return "guard:session:" + teamID
}
