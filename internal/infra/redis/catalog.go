package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/engine"
)

// Catalog caches quiz metadata in Redis in front of a slower backing catalog
// (Postgres). Entries expire with jittered TTLs to spread refreshes, and
// concurrent misses for the same slug collapse into one load.
type Catalog struct {
	client *redis.Client
	inner  engine.Catalog
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalog(client *redis.Client, inner engine.Catalog, ttl time.Duration) *Catalog {
	return &Catalog{
		client: client,
		inner:  inner,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Catalog) QuizInfo(ctx context.Context, slug string) (domain.QuizInfo, error) {
	key := c.key(slug)
	if info, ok := c.cached(ctx, key); ok {
		return info, nil
	}

	result, err, _ := c.sf.Do(slug, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if info, ok := c.cached(ctx, key); ok {
			return info, nil
		}
		info, err := c.inner.QuizInfo(ctx, slug)
		if err != nil {
			return domain.QuizInfo{}, err
		}
		if raw, err := json.Marshal(info); err == nil {
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return info, nil
	})
	if err != nil {
		return domain.QuizInfo{}, err
	}
	return result.(domain.QuizInfo), nil
}

func (c *Catalog) cached(ctx context.Context, key string) (domain.QuizInfo, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat a flaky cache as a miss; the inner catalog is authoritative.
			return domain.QuizInfo{}, false
		}
		return domain.QuizInfo{}, false
	}
	var info domain.QuizInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return domain.QuizInfo{}, false
	}
	return info, true
}

func (c *Catalog) key(slug string) string {
	return "quiz:info:" + slug
}

func (c *Catalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
