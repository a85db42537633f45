package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const seenKeyPrefix = "tracker:seen:"

// Sessions that die without cleanup should not leak their set forever.
const seenSetTTL = 7 * 24 * time.Hour

// SeenDomainRepoImpl provides a concrete implementation for the
// SeenDomainRepository interface using a Redis set. SADD is atomic, so
// concurrent extraction streams agree on which of them saw a domain first.
type SeenDomainRepoImpl struct {
	client *redis.Client
}

// NewSeenDomainRepo creates a new instance of SeenDomainRepoImpl.
func NewSeenDomainRepo(client *redis.Client) *SeenDomainRepoImpl {
	return &SeenDomainRepoImpl{client: client}
}

func (r *SeenDomainRepoImpl) key(sessionKey string) string {
	return seenKeyPrefix + sessionKey
}

// Reset clears the seen set so a new session starts empty.
func (r *SeenDomainRepoImpl) Reset(ctx context.Context, sessionKey string) error {
	return r.client.Del(ctx, r.key(sessionKey)).Err()
}

// Add records a domain name and reports whether it was newly seen.
func (r *SeenDomainRepoImpl) Add(ctx context.Context, sessionKey, domain string) (bool, error) {
	key := r.key(sessionKey)
	added, err := r.client.SAdd(ctx, key, domain).Result()
	if err != nil {
		return false, err
	}
	r.client.Expire(ctx, key, seenSetTTL)
	return added == 1, nil
}

// Count returns the number of distinct domains seen this session.
func (r *SeenDomainRepoImpl) Count(ctx context.Context, sessionKey string) (int64, error) {
	return r.client.SCard(ctx, r.key(sessionKey)).Result()
}
