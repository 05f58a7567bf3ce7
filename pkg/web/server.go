// Package web is a small fasthttp layer: a server wrapper, a route table
// with :param matching, and a per-request context carrying a request ID.
package web

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fluxorio/todo-service/pkg/core"
)

// ServerConfig configures the fasthttp listener.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Concurrency caps the number of requests served at once; overflow
	// connections are rejected by fasthttp.
	Concurrency int
}

// DefaultServerConfig returns listener defaults for a single instance.
func DefaultServerConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  1000,
	}
}

// Server serves HTTP requests through a Router.
type Server struct {
	config ServerConfig
	router *Router
	logger core.Logger
	server *fasthttp.Server
}

// NewServer creates a server dispatching to the given router.
func NewServer(config ServerConfig, router *Router, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}

	s := &Server{config: config, router: router, logger: logger}
	s.server = &fasthttp.Server{
		Handler:      s.handle,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		Concurrency:  config.Concurrency,
		Name:         "todod",
	}
	return s
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	s.router.Serve(NewRequestContext(ctx))
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infof("listening on %s", s.config.Addr)
	return s.server.ListenAndServe(s.config.Addr)
}

// Shutdown gracefully shuts the server down, waiting for in-flight
// requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.ShutdownWithContext(ctx)
}
