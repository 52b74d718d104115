package review

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// FeedbackCache stores encoded feedback by payload digest.
type FeedbackCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PayloadDigest is a stable key for p: the blake2b-256 hash of its JSON form.
func PayloadDigest(p InstructionPayload) string {
	data, err := json.Marshal(p)
	if err != nil {
		panic(fmt.Sprintf("review: encode payload: %v", err))
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FeedbackKeyPrefix namespaces feedback entries in Redis.
const FeedbackKeyPrefix = "wochenkontext:feedback:"

// RedisFeedbackCache keeps feedback in Redis with a fixed TTL.
type RedisFeedbackCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisFeedbackCache creates a cache over client. A zero ttl keeps
// entries until evicted.
func NewRedisFeedbackCache(client redis.Cmdable, ttl time.Duration) *RedisFeedbackCache {
	return &RedisFeedbackCache{client: client, ttl: ttl}
}

func (c *RedisFeedbackCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, FeedbackKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached feedback: %w", err)
	}
	return val, true, nil
}

func (c *RedisFeedbackCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, FeedbackKeyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached feedback: %w", err)
	}
	return nil
}

// CachedGenerator serves repeated payloads from a cache. Cache failures are
// logged and never fail generation.
type CachedGenerator struct {
	next  FeedbackGenerator
	cache FeedbackCache
}

// NewCachedGenerator wraps next with cache.
func NewCachedGenerator(next FeedbackGenerator, cache FeedbackCache) *CachedGenerator {
	return &CachedGenerator{next: next, cache: cache}
}

func (g *CachedGenerator) Generate(ctx context.Context, p InstructionPayload) (Feedback, error) {
	key := PayloadDigest(p)

	raw, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("feedback cache read failed", "error", err)
	}
	if ok {
		var fb Feedback
		if err := json.Unmarshal([]byte(raw), &fb); err == nil && fb.Content != "" {
			fb.Tokens = 0
			fb.Cached = true
			return fb, nil
		}
		slog.Warn("discarding undecodable cached feedback", "key", key)
	}

	fb, err := g.next.Generate(ctx, p)
	if err != nil {
		return Feedback{}, err
	}
	data, err := json.Marshal(fb)
	if err != nil {
		return fb, nil
	}
	if err := g.cache.Set(ctx, key, string(data)); err != nil {
		slog.Warn("feedback cache write failed", "error", err)
	}
	return fb, nil
}
