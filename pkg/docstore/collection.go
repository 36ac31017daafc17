package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection gives typed access to the documents of one table.
type Collection[T Document] struct {
	db   *gorm.DB
	log  *zap.Logger
	name string
}

// Query selects documents ordered by one column.
type Query struct {
	OrderBy    string
	Descending bool
	Limit      int
}

// NewCollection binds a collection of T to the store.
func NewCollection[T Document](s *Store) *Collection[T] {
	var zero T
	return &Collection[T]{db: s.db, log: s.log, name: zero.TableName()}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// In returns a view of the collection that reads and writes through tx.
func (c *Collection[T]) In(tx *Tx) *Collection[T] {
	return &Collection[T]{db: tx.db, log: c.log, name: c.name}
}

// Add inserts doc and returns the id the store assigned to it.
func (c *Collection[T]) Add(ctx context.Context, doc *T) (string, error) {
	if doc == nil {
		return "", errors.New("document cannot be nil")
	}

	if err := c.db.WithContext(ctx).Create(doc).Error; err != nil {
		c.log.Error("failed to add document", zap.String("collection", c.name), zap.Error(err))
		return "", fmt.Errorf("failed to add document to %s: %w", c.name, err)
	}

	id := (*doc).DocumentID()
	c.log.Debug("document added", zap.String("collection", c.name), zap.String("id", id))
	return id, nil
}

// Get reads a document by id. It returns ErrNotFound if there is none.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	return c.get(ctx, id, false)
}

// GetForUpdate reads a document by id and locks its row until the enclosing
// transaction ends. Outside a transaction it behaves like Get.
func (c *Collection[T]) GetForUpdate(ctx context.Context, id string) (*T, error) {
	return c.get(ctx, id, true)
}

func (c *Collection[T]) get(ctx context.Context, id string, lock bool) (*T, error) {
	q := c.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var doc T
	if err := q.Where("id = ?", id).Take(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		c.log.Error("failed to get document", zap.String("collection", c.name), zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get document from %s: %w", c.name, err)
	}
	return &doc, nil
}

// Update merges fields into an existing document. Columns not named in fields
// keep their values. The row is locked while transforms are resolved, so
// concurrent updates of the same document apply one after another.
func (c *Collection[T]) Update(ctx context.Context, id string, fields Fields) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current := map[string]any{}
		err := tx.Model(new(T)).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if len(fields) == 0 {
			return nil
		}

		values, err := fields.resolve(current)
		if err != nil {
			return err
		}
		return tx.Model(new(T)).Where("id = ?", id).Updates(values).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.log.Debug("document to update not found", zap.String("collection", c.name), zap.String("id", id))
			return ErrNotFound
		}
		c.log.Error("failed to update document", zap.String("collection", c.name), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update document in %s: %w", c.name, err)
	}

	c.log.Debug("document updated", zap.String("collection", c.name), zap.String("id", id), zap.Int("fields", len(fields)))
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		c.log.Error("failed to delete document", zap.String("collection", c.name), zap.String("id", id), zap.Error(res.Error))
		return fmt.Errorf("failed to delete document from %s: %w", c.name, res.Error)
	}

	c.log.Debug("document deleted",
		zap.String("collection", c.name),
		zap.String("id", id),
		zap.Int64("rows", res.RowsAffected),
	)
	return nil
}

// Query returns documents ordered and limited as q describes.
func (c *Collection[T]) Query(ctx context.Context, q Query) ([]T, error) {
	tx := c.db.WithContext(ctx)
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: q.Descending})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	docs := make([]T, 0)
	if err := tx.Find(&docs).Error; err != nil {
		c.log.Error("failed to query documents",
			zap.String("collection", c.name),
			zap.String("order_by", q.OrderBy),
			zap.Int("limit", q.Limit),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to query %s: %w", c.name, err)
	}
	return docs, nil
}
