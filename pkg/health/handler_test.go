package health

import (
	"encoding/json"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/valyala/fasthttp"

	"github.com/fluxorio/todo-service/pkg/db"
	"github.com/fluxorio/todo-service/pkg/web"
)

func newTestPool(t *testing.T) *db.Pool {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "health_test.db")
	pool, err := db.NewPool(db.DefaultPoolConfig(dsn, "sqlite3"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func serve(router *web.Router, path string) *fasthttp.RequestCtx {
	var fctx fasthttp.RequestCtx
	fctx.Request.Header.SetMethod("GET")
	fctx.Request.SetRequestURI(path)
	router.Serve(web.NewRequestContext(&fctx))
	return &fctx
}

func decode(t *testing.T, fctx *fasthttp.RequestCtx) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(fctx.Response.Body(), &m); err != nil {
		t.Fatalf("failed to decode body %q: %v", fctx.Response.Body(), err)
	}
	return m
}

func TestRoot(t *testing.T) {
	router := web.NewRouter(nil)
	NewHandler(newTestPool(t)).RegisterRoutes(router)

	fctx := serve(router, "/")
	if fctx.Response.StatusCode() != 200 {
		t.Fatalf("GET / status = %d, want 200", fctx.Response.StatusCode())
	}
	if msg, _ := decode(t, fctx)["message"].(string); msg == "" {
		t.Error("GET / returned no message")
	}
}

func TestHealth(t *testing.T) {
	router := web.NewRouter(nil)
	NewHandler(newTestPool(t)).RegisterRoutes(router)

	fctx := serve(router, "/health")
	if fctx.Response.StatusCode() != 200 {
		t.Fatalf("GET /health status = %d, want 200", fctx.Response.StatusCode())
	}
	body := decode(t, fctx)
	if body["status"] != "UP" {
		t.Errorf("health status = %v, want UP", body["status"])
	}
	if body["service"] != serviceName {
		t.Errorf("health service = %v, want %q", body["service"], serviceName)
	}
}

func TestReadyReflectsPoolHealth(t *testing.T) {
	pool := newTestPool(t)
	router := web.NewRouter(nil)
	NewHandler(pool).RegisterRoutes(router)

	fctx := serve(router, "/ready")
	if fctx.Response.StatusCode() != 200 {
		t.Fatalf("GET /ready status = %d, want 200", fctx.Response.StatusCode())
	}
	if body := decode(t, fctx); body["db"] != true {
		t.Errorf("ready db = %v, want true", body["db"])
	}

	// A closed pool is no longer ready.
	pool.Close()

	fctx = serve(router, "/ready")
	if fctx.Response.StatusCode() != 503 {
		t.Fatalf("GET /ready after close status = %d, want 503", fctx.Response.StatusCode())
	}
	if body := decode(t, fctx); body["db"] != false {
		t.Errorf("ready db after close = %v, want false", body["db"])
	}
}
