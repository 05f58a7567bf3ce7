package middleware

import (
	"encoding/json"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/fluxorio/todo-service/pkg/web"
)

func TestRecoveryCatchesPanic(t *testing.T) {
	router := web.NewRouter(nil)
	router.Use(Recovery(nil))
	router.GET("/panic", func(ctx *web.RequestContext) error {
		panic("boom")
	})

	var fctx fasthttp.RequestCtx
	fctx.Request.Header.SetMethod("GET")
	fctx.Request.SetRequestURI("/panic")
	router.Serve(web.NewRequestContext(&fctx))

	if fctx.Response.StatusCode() != 500 {
		t.Fatalf("status = %d, want 500", fctx.Response.StatusCode())
	}
	var resp map[string]string
	if err := json.Unmarshal(fctx.Response.Body(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["detail"] != "internal server error" {
		t.Errorf("detail = %q, want generic message", resp["detail"])
	}
}

func TestRecoveryPassesThrough(t *testing.T) {
	router := web.NewRouter(nil)
	router.Use(Recovery(nil))
	router.GET("/ok", func(ctx *web.RequestContext) error {
		return ctx.JSON(200, map[string]string{"status": "UP"})
	})

	var fctx fasthttp.RequestCtx
	fctx.Request.Header.SetMethod("GET")
	fctx.Request.SetRequestURI("/ok")
	router.Serve(web.NewRequestContext(&fctx))

	if fctx.Response.StatusCode() != 200 {
		t.Errorf("status = %d, want 200", fctx.Response.StatusCode())
	}
}
