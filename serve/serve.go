// Package serve runs the throwaway HTTP server that exposes a generated
// cover to fimfic2epub through its -C flag.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/flanksource/commons/logger"
)

// DefaultAddr mirrors python's http.server default port used by the
// original wrapper.
const DefaultAddr = ":8000"

// Server serves a directory of cover images over plain HTTP.
type Server struct {
	Dir  string
	Addr string

	srv *http.Server
	ln  net.Listener
}

func New(dir, addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{Dir: dir, Addr: addr}
}

// Start binds the listener and serves in the background. Bind errors
// (e.g. port already in use) surface here, not from the goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: http.FileServer(http.Dir(s.Dir))}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("cover server: %v", err)
		}
	}()

	logger.Debugf("Serving %s on %s", s.Dir, s.URL(""))
	return nil
}

// URL returns the address fimfic2epub should fetch the named file from.
// Wildcard bind addresses are rewritten to loopback since the child process
// runs on the same host.
func (s *Server) URL(filename string) string {
	addr := s.Addr
	if s.ln != nil {
		addr = s.ln.Addr().String()
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = "127.0.0.1", "8000"
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s/%s", net.JoinHostPort(host, port), filename)
}

// WaitReady polls the served file until it answers 200 or ctx expires.
func (s *Server) WaitReady(ctx context.Context, filename string) error {
	url := s.URL(filename)
	client := &http.Client{Timeout: time.Second}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("cover server never became ready at %s: %w", url, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	logger.Debugf("Stopping cover server on %s", s.Addr)
	return s.srv.Shutdown(ctx)
}
