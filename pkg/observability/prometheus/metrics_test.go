package prometheus

import (
	"database/sql"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordHTTPRequest("POST", "/todos", "201", 5*time.Millisecond, 32, 128)
	m.RecordHTTPRequest("POST", "/todos", "201", 7*time.Millisecond, 40, 130)
	m.RecordHTTPRequest("GET", "/todos", "200", 2*time.Millisecond, 0, 512)

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/todos", "201")); got != 2 {
		t.Errorf("POST /todos 201 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/todos", "200")); got != 1 {
		t.Errorf("GET /todos 200 count = %v, want 1", got)
	}
}

func TestUpdatePoolStats(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.UpdatePoolStats(sql.DBStats{OpenConnections: 7, Idle: 3, InUse: 4, WaitCount: 2})

	if got := testutil.ToFloat64(m.DatabaseConnectionsOpen); got != 7 {
		t.Errorf("open connections = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.DatabaseConnectionsIdle); got != 3 {
		t.Errorf("idle connections = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.DatabaseConnectionsInUse); got != 4 {
		t.Errorf("in-use connections = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.DatabaseWaitCount); got != 2 {
		t.Errorf("wait count = %v, want 2", got)
	}
}

func TestGetMetricsSingleton(t *testing.T) {
	if GetMetrics() != GetMetrics() {
		t.Error("GetMetrics() returned different instances")
	}
}
