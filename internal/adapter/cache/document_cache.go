package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quiz-service/pkg/docstore"
)

// DocumentCache defines the caching operations for documents of one collection.
type DocumentCache[T docstore.Document] interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, id string) (*T, error)

	// Set stores doc with the configured TTL.
	Set(ctx context.Context, doc *T) error

	// Delete removes the given ids. Missing keys are ignored.
	Delete(ctx context.Context, ids ...string) error
}

// RedisDocumentCache implements DocumentCache with JSON values keyed by
// "<collection>:<id>".
type RedisDocumentCache[T docstore.Document] struct {
	client     redis.UniversalClient
	ttl        time.Duration
	collection string
	log        *zap.Logger
}

// NewRedisDocumentCache creates a Redis-backed cache for documents of T.
func NewRedisDocumentCache[T docstore.Document](client redis.UniversalClient, ttl time.Duration, log *zap.Logger) *RedisDocumentCache[T] {
	var zero T
	return &RedisDocumentCache[T]{
		client:     client,
		ttl:        ttl,
		collection: zero.TableName(),
		log:        log,
	}
}

func (c *RedisDocumentCache[T]) key(id string) string {
	return c.collection + ":" + id
}

// Get retrieves a document from Redis.
func (c *RedisDocumentCache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("collection", c.collection), zap.String("id", id))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from cache: %w", c.key(id), err)
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cached %s: %w", c.key(id), err)
	}

	c.log.Debug("cache hit", zap.String("collection", c.collection), zap.String("id", id))
	return &doc, nil
}

// Set stores a document in Redis with TTL.
func (c *RedisDocumentCache[T]) Set(ctx context.Context, doc *T) error {
	if doc == nil {
		return errors.New("cannot cache nil document")
	}

	id := (*doc).DocumentID()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", c.key(id), err)
	}

	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", c.key(id), err)
	}
	return nil
}

// Delete removes documents from Redis.
func (c *RedisDocumentCache[T]) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to evict %d %s documents: %w", len(ids), c.collection, err)
	}

	c.log.Debug("evicted from cache", zap.String("collection", c.collection), zap.Strings("ids", ids))
	return nil
}
