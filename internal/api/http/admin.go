package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/tabletkv/tabletkv/internal/server"
	"github.com/tabletkv/tabletkv/internal/tablet"
	"github.com/tabletkv/tabletkv/pkg/observability"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Tables   int    `json:"tables"`
	InFlight int64  `json:"in_flight"`
}

// TablesResponse is the body of GET /v1/tables.
type TablesResponse struct {
	Tables    []types.TableStatus `json:"tables"`
	RequestID string              `json:"request_id"`
}

// AdminHandler serves health, metrics and table listings for a tablet.
type AdminHandler struct {
	tablet   *tablet.Tablet
	shutdown *server.ShutdownManager
	stats    []*observability.CallStats
	handler  http.Handler
}

// NewAdminHandler creates the admin handler. shutdown may be nil. The given
// stats are exported on /metrics together with the admin routes' own.
func NewAdminHandler(t *tablet.Tablet, shutdown *server.ShutdownManager, stats ...*observability.CallStats) *AdminHandler {
	own := observability.NewCallStats("admin", 10*time.Minute)
	h := &AdminHandler{
		tablet:   t,
		shutdown: shutdown,
		stats:    append(append([]*observability.CallStats(nil), stats...), own),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /metrics", h.metrics)
	mux.HandleFunc("GET /v1/tables", h.tables)
	mux.HandleFunc("GET /v1/tables/{tid}/{pid}", h.table)
	h.handler = instrument(mux, own)
	return h
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func (h *AdminHandler) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	tables, err := h.tablet.Tables(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), RequestID(r.Context()))
		return
	}
	resp.Tables = len(tables)

	code := http.StatusOK
	if h.shutdown != nil {
		resp.InFlight = h.shutdown.InFlightCount()
		if h.shutdown.IsShuttingDown() {
			resp.Status = "shutting_down"
			code = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, resp)
}

func (h *AdminHandler) metrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	for _, s := range h.stats {
		s.WritePrometheus(w)
	}
	metrics.WriteProcessMetrics(w)
}

func (h *AdminHandler) tables(w http.ResponseWriter, r *http.Request) {
	requestID := RequestID(r.Context())
	tables, err := h.tablet.Tables(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), requestID)
		return
	}
	if tables == nil {
		tables = []types.TableStatus{}
	}
	writeJSON(w, http.StatusOK, TablesResponse{Tables: tables, RequestID: requestID})
}

func (h *AdminHandler) table(w http.ResponseWriter, r *http.Request) {
	requestID := RequestID(r.Context())
	tid, err1 := strconv.ParseUint(r.PathValue("tid"), 10, 32)
	pid, err2 := strconv.ParseUint(r.PathValue("pid"), 10, 32)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "tid and pid must be unsigned integers", requestID)
		return
	}

	st, err := h.tablet.Status(r.Context(), types.TableKey{TID: uint32(tid), PID: uint32(pid)})
	switch {
	case errors.Is(err, tablet.ErrTableNotFound):
		writeError(w, http.StatusNotFound, "table is not exist", requestID)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error(), requestID)
	default:
		writeJSON(w, http.StatusOK, st)
	}
}
