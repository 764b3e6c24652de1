// Package http serves the tablet's admin endpoints.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tabletkv/tabletkv/pkg/observability"
)

type requestIDKey struct{}

// ErrorResponse is the body of every non-2xx admin response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// RequestID returns the id assigned to the request by the admin middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusWriter remembers the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// instrument wraps an admin mux. It propagates or assigns X-Request-ID,
// turns a handler panic into a 500, and records every request in stats
// under the route pattern it matched.
func instrument(next http.Handler, stats *observability.CallStats) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		sw := &statusWriter{ResponseWriter: w}
		req := r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
		defer func() {
			if p := recover(); p != nil {
				log.Printf("http: panic serving %s request_id=%s: %v", r.URL.Path, id, p)
				writeError(sw, http.StatusInternalServerError, "internal server error", id)
			}
			if stats != nil {
				stats.Record(route(req), outcome(sw.status), time.Since(start))
			}
		}()
		next.ServeHTTP(sw, req)
	})
}

// route is the pattern a ServeMux matched, set on req in place.
func route(req *http.Request) string {
	if req.Pattern == "" {
		return "unmatched"
	}
	return req.Pattern
}

func outcome(status int) observability.Outcome {
	switch {
	case status >= 500:
		return observability.OutcomeError
	case status >= 400:
		return observability.OutcomeRejected
	default:
		return observability.OutcomeOK
	}
}

func writeError(w http.ResponseWriter, statusCode int, message, requestID string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message, RequestID: requestID})
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("http: failed to encode response: %v", err)
	}
}
