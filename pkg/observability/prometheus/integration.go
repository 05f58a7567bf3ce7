package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/fluxorio/todo-service/pkg/db"
	"github.com/fluxorio/todo-service/pkg/web"
)

// HTTPMetricsMiddleware records request metrics for every route it wraps.
func HTTPMetricsMiddleware() web.Middleware {
	m := GetMetrics()
	return func(next web.RequestHandler) web.RequestHandler {
		return func(ctx *web.RequestContext) error {
			start := time.Now()
			method := ctx.Method()
			path := ctx.Path()
			requestSize := int64(len(ctx.RequestCtx.PostBody()))

			err := next(ctx)

			duration := time.Since(start)
			status := strconv.Itoa(ctx.RequestCtx.Response.StatusCode())
			responseSize := int64(len(ctx.RequestCtx.Response.Body()))

			m.RecordHTTPRequest(method, path, status, duration, requestSize, responseSize)

			return err
		}
	}
}

// RegisterMetricsEndpoint serves the default registry at the given path.
func RegisterMetricsEndpoint(router *web.Router, path string) {
	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{}))

	router.GET(path, func(ctx *web.RequestContext) error {
		handler(ctx.RequestCtx)
		return nil
	})
}

// StartPoolStatsCollector publishes pool statistics every interval until
// ctx is cancelled.
func StartPoolStatsCollector(ctx context.Context, pool *db.Pool, interval time.Duration) {
	m := GetMetrics()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.UpdatePoolStats(pool.Stats())
			}
		}
	}()
}
