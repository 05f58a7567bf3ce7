package web

import (
	"strings"
	"sync"

	"github.com/fluxorio/todo-service/pkg/core"
)

// RequestHandler handles one request. A returned error means the handler
// could not produce a response; the router turns it into a 500.
type RequestHandler func(ctx *RequestContext) error

// Middleware wraps a RequestHandler.
type Middleware func(next RequestHandler) RequestHandler

// Router dispatches requests over a linear route table. Path segments
// prefixed with ':' bind parameters (e.g. "/todos/:id").
type Router struct {
	routes     []*route
	middleware []Middleware
	logger     core.Logger
	mu         sync.RWMutex
}

type route struct {
	method  string
	path    string
	handler RequestHandler
}

// NewRouter creates an empty router.
func NewRouter(logger core.Logger) *Router {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Router{logger: logger}
}

// Use appends middleware applied to every route registered afterwards.
func (r *Router) Use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw)
}

func (r *Router) GET(path string, handler RequestHandler)    { r.Handle("GET", path, handler) }
func (r *Router) POST(path string, handler RequestHandler)   { r.Handle("POST", path, handler) }
func (r *Router) PUT(path string, handler RequestHandler)    { r.Handle("PUT", path, handler) }
func (r *Router) DELETE(path string, handler RequestHandler) { r.Handle("DELETE", path, handler) }

// Handle registers a handler, wrapping it in the middleware chain.
func (r *Router) Handle(method, path string, handler RequestHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}

	r.routes = append(r.routes, &route{method: method, path: path, handler: handler})
}

// Serve matches the request against the route table and runs the handler.
func (r *Router) Serve(ctx *RequestContext) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	method := ctx.Method()
	path := ctx.Path()

	for _, rt := range r.routes {
		if rt.method != method || !matchPath(rt.path, path) {
			continue
		}
		extractParams(rt.path, path, ctx.Params)

		if err := rt.handler(ctx); err != nil {
			r.logger.WithFields(map[string]interface{}{
				"request_id": ctx.RequestID(),
				"method":     method,
				"path":       path,
			}).Errorf("handler error: %v", err)
			// Drop any partial body the handler may have written.
			ctx.RequestCtx.Response.ResetBody()
			_ = ctx.JSON(500, map[string]interface{}{"detail": "internal server error"})
		}
		return
	}

	_ = ctx.JSON(404, map[string]interface{}{"detail": "Not Found"})
}

func matchPath(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}

func extractParams(pattern, path string, params map[string]string) {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") && i < len(pathParts) {
			params[strings.TrimPrefix(part, ":")] = pathParts[i]
		}
	}
}
