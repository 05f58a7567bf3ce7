package web

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/fluxorio/todo-service/pkg/core"
)

// RequestContext wraps fasthttp's RequestCtx with route parameters and a
// per-request ID for tracing.
type RequestContext struct {
	RequestCtx *fasthttp.RequestCtx
	Params     map[string]string
	requestID  string
}

// NewRequestContext builds a context for one incoming request and assigns
// it a fresh request ID.
func NewRequestContext(ctx *fasthttp.RequestCtx) *RequestContext {
	return &RequestContext{
		RequestCtx: ctx,
		Params:     make(map[string]string),
		requestID:  core.GenerateRequestID(),
	}
}

// JSON writes a JSON response with the given status code.
func (c *RequestContext) JSON(statusCode int, data interface{}) error {
	if statusCode < 100 || statusCode > 599 {
		return fmt.Errorf("invalid status code: %d", statusCode)
	}

	c.RequestCtx.SetStatusCode(statusCode)
	c.RequestCtx.SetContentType("application/json")

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("json encode error: %w", err)
	}

	_, err = c.RequestCtx.Write(body)
	return err
}

// NoContent writes an empty response with the given status code.
func (c *RequestContext) NoContent(statusCode int) error {
	c.RequestCtx.SetStatusCode(statusCode)
	c.RequestCtx.Response.ResetBody()
	return nil
}

// BindJSON decodes the request body into v.
func (c *RequestContext) BindJSON(v interface{}) error {
	if v == nil {
		return fmt.Errorf("cannot bind to nil value")
	}

	body := c.RequestCtx.PostBody()
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	return json.Unmarshal(body, v)
}

// Query returns a query parameter value.
func (c *RequestContext) Query(key string) string {
	return string(c.RequestCtx.QueryArgs().Peek(key))
}

// Param returns a path parameter value.
func (c *RequestContext) Param(key string) string {
	return c.Params[key]
}

// Method returns the HTTP method.
func (c *RequestContext) Method() string {
	return string(c.RequestCtx.Method())
}

// Path returns the request path.
func (c *RequestContext) Path() string {
	return string(c.RequestCtx.Path())
}

// RequestID returns the ID assigned to this request.
func (c *RequestContext) RequestID() string {
	return c.requestID
}

// Context returns a context carrying the request ID.
func (c *RequestContext) Context() context.Context {
	ctx := context.Background()
	if c.requestID != "" {
		ctx = core.WithRequestID(ctx, c.requestID)
	}
	return ctx
}
