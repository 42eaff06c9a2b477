package httpserver_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/httpserver"
	"github.com/dmitrymomot/recipebox/pkg/logger"
)

func TestServerRunAndShutdown(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}))
	}()

	addrCtx, addrCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer addrCancel()
	addr, err := srv.Addr(addrCtx)
	require.NoError(t, err)

	resp, err := http.Get(fmt.Sprintf("http://%s/", addr))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerRunTwice(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Run(ctx, http.NotFoundHandler()) }()

	addrCtx, addrCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer addrCancel()
	_, err := srv.Addr(addrCtx)
	require.NoError(t, err)

	err = srv.Run(ctx, http.NotFoundHandler())
	assert.ErrorIs(t, err, httpserver.ErrRunning)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	bad := func(context.Context) error { return errors.New("down") }

	rec := httptest.NewRecorder()
	httpserver.Readiness(logger.Discard(), time.Second, map[string]httpserver.Check{"pg": ok, "redis": ok}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pg":"up","redis":"up"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	httpserver.Readiness(logger.Discard(), time.Second, map[string]httpserver.Check{"pg": ok, "redis": bad}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"pg":"up","redis":"down"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	httpserver.Liveness().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, "ALIVE", rec.Body.String())
}
