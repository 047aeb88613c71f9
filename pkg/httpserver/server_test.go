package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netman-app/authkit/pkg/httpserver"
	"github.com/netman-app/authkit/pkg/logger"
)

func TestServer_RunAndShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := httpserver.New(httpserver.Config{ShutdownTimeout: time.Second}, httpserver.WithListener(ln))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("pong"))
		}))
	}()

	var resp *http.Response
	for range 50 {
		resp, err = http.Get("http://" + ln.Addr().String())
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := httpserver.New(httpserver.Config{Addr: ln.Addr().String()})
	err = srv.Run(context.Background(), http.NotFoundHandler())
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestHealthHandlers(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("db down") }

	rec = httptest.NewRecorder()
	httpserver.ReadinessHandler(logger.Discard(), ok)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	rec = httptest.NewRecorder()
	httpserver.ReadinessHandler(logger.Discard(), ok, fail)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}
