// Package docstore is a small document store built on GORM. Each collection
// is a table, each document a row keyed by a store-assigned string id.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a document does not exist in its collection.
var ErrNotFound = errors.New("document not found")

// Document is a record stored in a collection. TableName names the collection.
type Document interface {
	TableName() string
	DocumentID() string
}

// Store owns the database handle shared by all collections.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a Store on top of an opened GORM connection.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Tx is a running transaction. Collections bound with Collection.In read and
// write through it.
type Tx struct {
	db *gorm.DB
}

// RunTransaction executes fn inside one database transaction. The transaction
// commits when fn returns nil and rolls back otherwise; fn's error is returned
// unchanged.
func (s *Store) RunTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&Tx{db: db})
	})
}

// Migrate creates or updates the tables backing the given documents.
func (s *Store) Migrate(ctx context.Context, docs ...Document) error {
	models := make([]any, len(docs))
	for i, d := range docs {
		models[i] = d
	}

	if err := s.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate collections: %w", err)
	}

	s.log.Info("collections migrated", zap.Int("count", len(docs)))
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// NewID returns a fresh document identifier.
func NewID() string {
	return uuid.NewString()
}

// ServerTime returns the store clock reading for tx. Documents use it to stamp
// creation times so that the value never comes from the caller's clock.
func ServerTime(tx *gorm.DB) time.Time {
	if tx != nil && tx.Config != nil && tx.NowFunc != nil {
		return tx.NowFunc()
	}
	return time.Now().UTC()
}
