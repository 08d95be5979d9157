// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// blockingServer accepts nothing and blocks in Serve until Shutdown.
type blockingServer struct {
	serveErr    error
	shutdownErr error
	serving     chan net.Listener
	stop        chan struct{}
	serves      atomic.Int32
	shutdowns   atomic.Int32
}

func newBlockingServer() *blockingServer {
	return &blockingServer{
		serving: make(chan net.Listener, 1),
		stop:    make(chan struct{}),
	}
}

func (s *blockingServer) Serve(ln net.Listener) error {
	defer ln.Close()
	s.serves.Add(1)
	select {
	case s.serving <- ln:
	default:
	}
	if s.serveErr != nil {
		return s.serveErr
	}
	<-s.stop
	return http.ErrServerClosed
}

func (s *blockingServer) Shutdown(context.Context) error {
	s.shutdowns.Add(1)
	close(s.stop)
	return s.shutdownErr
}

func startService(t *testing.T, svc *HTTPServerService) (cancel context.CancelFunc, errCh <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan error, 1)
	go func() { ch <- svc.Serve(ctx) }()
	return cancel, ch
}

func waitServing(t *testing.T, s *blockingServer) net.Listener {
	t.Helper()
	select {
	case ln := <-s.serving:
		return ln
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
		return nil
	}
}

func TestHTTPServerService_Interface(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ HTTPServer = (*http.Server)(nil)
}

func TestNewHTTPServerService_Timeout(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{5 * time.Second, 5 * time.Second},
		{0, defaultShutdownTimeout},
		{-time.Second, defaultShutdownTimeout},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newBlockingServer(), ":0", tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("NewHTTPServerService(%v).shutdownTimeout = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
	}
	if got := NewHTTPServerService(newBlockingServer(), ":0", 0).String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	server := newBlockingServer()
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

	if svc.Addr() != "" {
		t.Errorf("Addr() before Serve = %q, want empty", svc.Addr())
	}

	cancel, errCh := startService(t, svc)
	ln := waitServing(t, server)

	if got := svc.Addr(); got != ln.Addr().String() {
		t.Errorf("Addr() = %q, want %q", got, ln.Addr().String())
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if server.serves.Load() != 1 || server.shutdowns.Load() != 1 {
		t.Errorf("serves = %d, shutdowns = %d; want 1, 1", server.serves.Load(), server.shutdowns.Load())
	}
	if svc.Addr() != "" {
		t.Errorf("Addr() after shutdown = %q, want empty", svc.Addr())
	}
}

func TestHTTPServerService_ServeError(t *testing.T) {
	wantErr := errors.New("accept: too many open files")
	server := newBlockingServer()
	server.serveErr = wantErr
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

	err := svc.Serve(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("Serve() = %v, want %v", err, wantErr)
	}
}

func TestHTTPServerService_ShutdownError(t *testing.T) {
	wantErr := errors.New("shutdown timeout")
	server := newBlockingServer()
	server.shutdownErr = wantErr
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

	cancel, errCh := startService(t, svc)
	waitServing(t, server)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, wantErr) {
			t.Errorf("Serve() = %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestHTTPServerService_AddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()

	server := newBlockingServer()
	svc := NewHTTPServerService(server, taken.Addr().String(), time.Second)

	if err := svc.Serve(context.Background()); err == nil {
		t.Fatal("expected bind error when the port is taken")
	}
	if server.serves.Load() != 0 {
		t.Error("Serve was called on the server despite the bind failure")
	}
}

func TestHTTPServerService_RealServer(t *testing.T) {
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)
	cancel, errCh := startService(t, svc)
	defer cancel()

	var addr string
	deadline := time.Now().Add(2 * time.Second)
	for addr == "" && time.Now().Before(deadline) {
		addr = svc.Addr()
		time.Sleep(5 * time.Millisecond)
	}
	if addr == "" {
		t.Fatal("server never reported a bound address")
	}

	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	server := newBlockingServer()
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	waitServing(t, server)
	cancel()
	<-errCh

	if server.shutdowns.Load() != 1 {
		t.Errorf("shutdowns = %d, want 1", server.shutdowns.Load())
	}
}
