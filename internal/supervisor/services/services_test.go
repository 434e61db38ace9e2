// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	listenErr     error
	shutdownErr   error
	shutdownCount atomic.Int32
	started       chan struct{}
	stopCh        chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	select {
	case m.started <- struct{}{}:
	default:
	}
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stopCh
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdownCount.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*StoreGCService)(nil)
)

func TestHTTPServerService(t *testing.T) {
	errBind := errors.New("address already in use")
	errShutdown := errors.New("connections still open")

	tests := []struct {
		name         string
		listenErr    error
		shutdownErr  error
		cancel       bool
		wantErr      error
		wantShutdown int32
	}{
		{name: "graceful shutdown on cancel", cancel: true, wantErr: context.Canceled, wantShutdown: 1},
		{name: "listen failure", listenErr: errBind, wantErr: errBind},
		{name: "shutdown failure", cancel: true, shutdownErr: errShutdown, wantErr: errShutdown, wantShutdown: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMockHTTPServer()
			srv.listenErr = tt.listenErr
			srv.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(srv, time.Second)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			done := make(chan error, 1)
			go func() { done <- svc.Serve(ctx) }()

			<-srv.started
			if tt.cancel {
				cancel()
			}

			select {
			case err := <-done:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Serve() error = %v, want %v", err, tt.wantErr)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve() did not return")
			}
			if got := srv.shutdownCount.Load(); got != tt.wantShutdown {
				t.Errorf("Shutdown calls = %d, want %d", got, tt.wantShutdown)
			}
		})
	}
}

func TestHTTPServerService_Defaults(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

// countingGC records RunGC calls and optionally fails.
type countingGC struct {
	calls atomic.Int32
	err   error
}

func (g *countingGC) RunGC() (int, error) {
	g.calls.Add(1)
	return 1, g.err
}

func TestStoreGCService(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "successful runs"},
		{name: "errors do not stop the loop", err: errors.New("gc failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := &countingGC{err: tt.err}
			svc := NewStoreGCService(gc, 5*time.Millisecond)

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			err := svc.Serve(ctx)

			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() error = %v, want deadline exceeded", err)
			}
			if gc.calls.Load() < 2 {
				t.Errorf("RunGC calls = %d, want at least 2", gc.calls.Load())
			}
		})
	}
}

func TestStoreGCService_Defaults(t *testing.T) {
	svc := NewStoreGCService(&countingGC{}, 0)
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", svc.interval)
	}
	if svc.String() != "store-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}
