package middleware

import (
	"time"

	"github.com/fluxorio/todo-service/pkg/core"
	"github.com/fluxorio/todo-service/pkg/web"
)

// AccessLog logs one line per request with method, path, status, duration
// and request ID.
func AccessLog(logger core.Logger) web.Middleware {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}

	return func(next web.RequestHandler) web.RequestHandler {
		return func(ctx *web.RequestContext) error {
			start := time.Now()

			err := next(ctx)

			logger.WithFields(map[string]interface{}{
				"request_id": ctx.RequestID(),
				"status":     ctx.RequestCtx.Response.StatusCode(),
				"duration":   time.Since(start).Round(time.Microsecond),
			}).Infof("%s %s", ctx.Method(), ctx.Path())

			return err
		}
	}
}
