package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"bikeshare-dashboard/logger"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestDashboardHttpServer_RunAndShutdown(t *testing.T) {
	port := freePort(t)
	muxRouter := mux.NewRouter()
	srv := NewDashboardHttpServer(NewRouter(&MockDashboardHandler{}, muxRouter), muxRouter, port, time.Second, logger.Nop())

	shutdownCalled := make(chan struct{})
	srv.OnShutdown(func() { close(shutdownCalled) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	select {
	case <-shutdownCalled:
	default:
		t.Fatal("shutdown hook not called")
	}
}
