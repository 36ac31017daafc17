// Package document is the resource repository: CRUD over one docstore
// collection with every outcome folded into a Result.
package document

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"quiz-service/pkg/docstore"
	"quiz-service/pkg/logger"
)

// Status is the outcome of a repository operation.
type Status int

const (
	StatusOK Status = iota
	StatusCreated
	StatusNotFound
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCreated:
		return "created"
	case StatusNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}

// Result carries a status and, for ok/created, the document.
type Result[T any] struct {
	Status Status
	Data   *T
}

// Repository is implemented by the collection repository and the cache-aside
// decorator around it.
type Repository[T docstore.Document] interface {
	Create(ctx context.Context, doc *T) Result[T]
	Get(ctx context.Context, id string) Result[T]
	Update(ctx context.Context, id string, fields docstore.Fields) Result[T]
	Delete(ctx context.Context, id string) Result[T]
}

// CollectionRepository implements Repository directly on a collection.
type CollectionRepository[T docstore.Document] struct {
	coll *docstore.Collection[T]
	log  *zap.Logger
}

// NewCollectionRepository creates a repository over the collection of T.
func NewCollectionRepository[T docstore.Document](store *docstore.Store, log *zap.Logger) *CollectionRepository[T] {
	coll := docstore.NewCollection[T](store)
	return &CollectionRepository[T]{
		coll: coll,
		log:  log.With(zap.String("collection", coll.Name())),
	}
}

// Create inserts doc and returns it as re-read from the store.
func (r *CollectionRepository[T]) Create(ctx context.Context, doc *T) Result[T] {
	id, err := r.coll.Add(ctx, doc)
	if err != nil {
		logger.WithContext(ctx, r.log).Error("create failed", zap.Error(err))
		return Result[T]{Status: StatusInternal}
	}

	res := r.Get(ctx, id)
	if res.Status != StatusOK {
		// the row was just written, so anything but ok is a store failure
		return Result[T]{Status: StatusInternal}
	}
	return Result[T]{Status: StatusCreated, Data: res.Data}
}

// Get reads one document.
func (r *CollectionRepository[T]) Get(ctx context.Context, id string) Result[T] {
	doc, err := r.coll.Get(ctx, id)
	if err != nil {
		return r.failure(ctx, "get", id, err)
	}
	return Result[T]{Status: StatusOK, Data: doc}
}

// Update merges fields into the document and returns the full document.
func (r *CollectionRepository[T]) Update(ctx context.Context, id string, fields docstore.Fields) Result[T] {
	if err := r.coll.Update(ctx, id, fields); err != nil {
		return r.failure(ctx, "update", id, err)
	}
	return r.Get(ctx, id)
}

// Delete removes the document. A missing document still reports ok.
func (r *CollectionRepository[T]) Delete(ctx context.Context, id string) Result[T] {
	if err := r.coll.Delete(ctx, id); err != nil {
		return r.failure(ctx, "delete", id, err)
	}
	return Result[T]{Status: StatusOK}
}

func (r *CollectionRepository[T]) failure(ctx context.Context, op, id string, err error) Result[T] {
	if errors.Is(err, docstore.ErrNotFound) {
		return Result[T]{Status: StatusNotFound}
	}
	logger.WithContext(ctx, r.log).Error(op+" failed", zap.String("id", id), zap.Error(err))
	return Result[T]{Status: StatusInternal}
}
