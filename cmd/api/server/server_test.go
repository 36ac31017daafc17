package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"quiz-service/internal/config"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	srv := New(&config.Config{App: config.AppConfig{HTTPPort: "0"}}, zaptest.NewLogger(t), r)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(lis) }()

	resp, err := resty.New().R().Get("http://" + lis.Addr().String() + "/")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.String())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err, "a clean shutdown is not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestWithSignal_ParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, stop := WithSignal(parent)
	defer stop()

	cancelParent()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled")
	}
}
