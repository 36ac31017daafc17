// Package docstoretest opens throwaway in-memory stores for tests.
package docstoretest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"quiz-service/pkg/docstore"
	"quiz-service/pkg/logger"
)

// Clock is a deterministic store clock that advances one second per reading.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC()}
}

// Now returns the current reading and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

// Open returns a sqlite-backed GORM connection holding a single in-memory
// database. The pool is capped at one connection so every caller sees the same
// database and transactions run one at a time.
func Open(t testing.TB, clock *Clock) *gorm.DB {
	t.Helper()

	cfg := &gorm.Config{
		Logger: logger.NewGormLoggerWithConfig(zaptest.NewLogger(t), 0.2, "warn"),
	}
	if clock != nil {
		cfg.NowFunc = clock.Now
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// New opens an in-memory store with the collections of docs migrated.
func New(t testing.TB, clock *Clock, docs ...docstore.Document) *docstore.Store {
	t.Helper()

	store := docstore.New(Open(t, clock), zaptest.NewLogger(t))
	require.NoError(t, store.Migrate(context.Background(), docs...))
	return store
}
