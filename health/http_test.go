package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serve(t *testing.T, agg *Aggregator, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	RegisterHandlers(mux, agg)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLivenessHandler(t *testing.T) {
	rec := serve(t, NewAggregator(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		code   int
		body   string
	}{
		{"healthy", Healthy("ok"), http.StatusOK, "OK"},
		{"degraded", Degraded("redis down", nil), http.StatusOK, "DEGRADED"},
		{"unhealthy", Unhealthy("broken", nil), http.StatusServiceUnavailable, "UNHEALTHY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator()
			agg.Register(staticChecker("c", tt.result))
			rec := serve(t, agg, "/readyz")
			if rec.Code != tt.code || rec.Body.String() != tt.body {
				t.Errorf("GET /readyz = %d %q, want %d %q", rec.Code, rec.Body.String(), tt.code, tt.body)
			}
		})
	}
}

func TestDetailedHandler(t *testing.T) {
	agg := NewAggregator()
	agg.Register(NewBackendChecker("redis", nil))
	agg.Register(staticChecker("app", Healthy("ok")))

	rec := serve(t, agg, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
	redis := resp.Checks["redis"]
	if redis.Status != "degraded" || redis.Error != ErrBackendNotConfigured.Error() {
		t.Errorf("redis = %+v", redis)
	}
	if resp.Checks["app"].Status != "healthy" {
		t.Errorf("app = %+v", resp.Checks["app"])
	}
}

func TestDetailedHandler_Unhealthy(t *testing.T) {
	agg := NewAggregator()
	agg.Register(staticChecker("db", Unhealthy("down", errors.New("refused"))))

	rec := serve(t, agg, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /health = %d, want 503", rec.Code)
	}
}
