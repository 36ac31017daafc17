package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"quiz-service/internal/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DB: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			SQLitePath:   filepath.Join(t.TempDir(), "quiz.db"),
			MaxOpenConns: 4,
			MaxIdleConns: 1,
			LogLevel:     "warn",
		},
		App:    config.AppConfig{HTTPPort: "0", ShutdownTimeout: time.Second},
		Logger: config.LoggerConfig{ServiceName: "quiz-service", ServiceVersion: "test"},
	}
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestNewContainer_WithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, err := NewContainer(context.Background(), sqliteConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, c.Close()) }()

	assert.Nil(t, c.RedisClient)
	assert.Equal(t, http.StatusOK, serve(c.Router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(c.Router, http.MethodPost, "/users", `{"name":"Ada"}`).Code)
	assert.Equal(t, http.StatusOK, serve(c.Router, http.MethodGet, "/metrics", "").Code)
}

func TestNewContainer_WithCacheAndRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)

	cfg := sqliteConfig(t)
	cfg.Redis = config.RedisConfig{Enabled: true, Host: mr.Host(), Port: mr.Port(), PoolSize: 2}
	cfg.Cache = config.CacheConfig{Enabled: true, TTL: time.Minute}
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, c.Close()) }()

	require.NotNil(t, c.RedisClient)

	assert.Equal(t, http.StatusOK, serve(c.Router, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, serve(c.Router, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(c.Router, http.MethodGet, "/", "").Code)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Cache.Enabled = true

	_, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "config validation failed")
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	cfg := sqliteConfig(t)
	cfg.Redis = config.RedisConfig{Enabled: true, Host: host, Port: port, PoolSize: 1}

	_, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "failed to initialize Redis")
}

func TestContainer_CloseKeepsWrappedErrors(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := sqliteConfig(t)
	cfg.Redis = config.RedisConfig{Enabled: true, Host: mr.Host(), Port: mr.Port(), PoolSize: 1}

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, c.RedisClient.Close())

	err = c.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, redis.ErrClosed)
}
