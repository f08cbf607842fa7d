package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// LivenessHandler answers 200 while the process is up.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReadinessHandler answers 200 when no check is Unhealthy.
func ReadinessHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := OverallStatus(agg.CheckAll(r.Context()))

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(httpStatus(status))
		switch status {
		case StatusHealthy:
			_, _ = w.Write([]byte("OK"))
		case StatusDegraded:
			_, _ = w.Write([]byte("DEGRADED"))
		default:
			_, _ = w.Write([]byte("UNHEALTHY"))
		}
	}
}

// Response is the JSON body of DetailedHandler.
type Response struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Checks    map[string]CheckResponse `json:"checks,omitempty"`
}

// CheckResponse is one entry of Response.Checks.
type CheckResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Duration string `json:"duration,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DetailedHandler writes every check result as JSON.
func DetailedHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := agg.CheckAll(r.Context())
		status := OverallStatus(results)

		resp := Response{
			Status:    status.String(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    make(map[string]CheckResponse, len(results)),
		}
		for name, res := range results {
			check := CheckResponse{
				Status:   res.Status.String(),
				Message:  res.Message,
				Duration: res.Duration.String(),
			}
			if res.Error != nil {
				check.Error = res.Error.Error()
			}
			resp.Checks[name] = check
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus(status))
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// RegisterHandlers mounts /healthz, /readyz and /health on mux.
func RegisterHandlers(mux *http.ServeMux, agg *Aggregator) {
	mux.HandleFunc("/healthz", LivenessHandler())
	mux.HandleFunc("/readyz", ReadinessHandler(agg))
	mux.HandleFunc("/health", DetailedHandler(agg))
}

func httpStatus(s Status) int {
	if s == StatusUnhealthy {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
