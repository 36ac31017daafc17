package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"quiz-service/internal/adapter/cache"
	"quiz-service/internal/adapter/repository/document"
	"quiz-service/pkg/docstore"
	"quiz-service/pkg/logger"
)

// Repository implements document.Repository with cache-aside reads.
// It wraps a store-backed repository and a document cache.
type Repository[T docstore.Document] struct {
	next  document.Repository[T]
	cache cache.DocumentCache[T]
	log   *zap.Logger
	group singleflight.Group
}

// NewRepository wraps next with the given cache.
func NewRepository[T docstore.Document](next document.Repository[T], c cache.DocumentCache[T], log *zap.Logger) *Repository[T] {
	return &Repository[T]{
		next:  next,
		cache: c,
		log:   log,
	}
}

// Create delegates to the wrapped repository and warms the cache.
func (r *Repository[T]) Create(ctx context.Context, doc *T) document.Result[T] {
	res := r.next.Create(ctx, doc)
	if res.Status == document.StatusCreated && res.Data != nil {
		if err := r.cache.Set(ctx, res.Data); err != nil {
			logger.WithContext(ctx, r.log).Warn("failed to cache created document", zap.Error(err))
		}
	}
	return res
}

// Get returns the cached document when present. On a miss only one caller
// per id reads the store; the others share its result.
func (r *Repository[T]) Get(ctx context.Context, id string) document.Result[T] {
	log := logger.WithContext(ctx, r.log)

	cached, err := r.cache.Get(ctx, id)
	if err != nil {
		log.Warn("cache get error, falling back to store", zap.String("id", id), zap.Error(err))
	} else if cached != nil {
		return document.Result[T]{Status: document.StatusOK, Data: cached}
	}

	v, _, _ := r.group.Do(id, func() (any, error) {
		// detached: the result is shared with every waiting caller
		sctx := context.WithoutCancel(ctx)
		res := r.next.Get(sctx, id)
		if res.Status == document.StatusOK {
			if err := r.cache.Set(sctx, res.Data); err != nil {
				log.Warn("failed to cache document", zap.String("id", id), zap.Error(err))
			}
		}
		return res, nil
	})
	return v.(document.Result[T])
}

// Update writes through to the store and evicts the cached copy.
func (r *Repository[T]) Update(ctx context.Context, id string, fields docstore.Fields) document.Result[T] {
	res := r.next.Update(ctx, id, fields)
	r.evict(ctx, id)
	return res
}

// Delete removes the document and evicts the cached copy.
func (r *Repository[T]) Delete(ctx context.Context, id string) document.Result[T] {
	res := r.next.Delete(ctx, id)
	r.evict(ctx, id)
	return res
}

// Invalidate evicts ids after writes made outside this repository, such as
// an enrollment transaction.
func (r *Repository[T]) Invalidate(ctx context.Context, ids ...string) {
	r.evict(ctx, ids...)
}

func (r *Repository[T]) evict(ctx context.Context, ids ...string) {
	if err := r.cache.Delete(ctx, ids...); err != nil {
		logger.WithContext(ctx, r.log).Warn("failed to invalidate cache", zap.Strings("ids", ids), zap.Error(err))
	}
}
