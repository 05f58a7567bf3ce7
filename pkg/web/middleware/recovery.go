// Package middleware holds HTTP middleware shared by all routes.
package middleware

import (
	"github.com/fluxorio/todo-service/pkg/core"
	"github.com/fluxorio/todo-service/pkg/web"
)

// Recovery recovers from handler panics and returns a 500 response.
func Recovery(logger core.Logger) web.Middleware {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}

	return func(next web.RequestHandler) web.RequestHandler {
		return func(ctx *web.RequestContext) error {
			defer func() {
				if r := recover(); r != nil {
					logger.WithFields(map[string]interface{}{
						"request_id": ctx.RequestID(),
						"method":     ctx.Method(),
						"path":       ctx.Path(),
					}).Errorf("panic recovered: %v", r)

					ctx.RequestCtx.Response.ResetBody()
					_ = ctx.JSON(500, map[string]interface{}{"detail": "internal server error"})
				}
			}()

			return next(ctx)
		}
	}
}
