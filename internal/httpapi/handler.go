package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/coverage"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const validateTimeout = 10 * time.Second

// CoverageService is the part of service.CoverageService the API needs.
type CoverageService interface {
	Snapshot() *coverage.Snapshot
	CheckZip(zipcode string) (string, string, bool)
	ValidatePoint(ctx context.Context, point models.Coordinates) coverage.ValidationResult
}

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type stateCoverage struct {
	State    string   `json:"state"`
	Count    int      `json:"count"`
	ZipCodes []string `json:"zipCodes"`
}

type coverageResponse struct {
	Total  int             `json:"total"`
	States []stateCoverage `json:"states"`
}

type zipResponse struct {
	Zipcode string `json:"zipcode"`
	State   string `json:"state"`
	Covered bool   `json:"covered"`
}

type validateResponse struct {
	Valid   bool            `json:"valid"`
	Zipcode *string         `json:"zipcode"`
	Status  coverage.Status `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the coverage API together with health and metrics endpoints.
type Handler struct {
	log      *slog.Logger
	service  CoverageService
	pinger   Pinger
	gatherer prometheus.Gatherer
}

// NewHandler creates a Handler. A nil pinger makes /healthz always report OK.
func NewHandler(log *slog.Logger, service CoverageService, pinger Pinger, gatherer prometheus.Gatherer) *Handler {
	return &Handler{log: log, service: service, pinger: pinger, gatherer: gatherer}
}

// Routes returns the router with every endpoint registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/coverage", h.listCoverage)
	mux.HandleFunc("GET /api/v1/coverage/zip/{zip}", h.checkZip)
	mux.HandleFunc("GET /api/v1/coverage/validate", h.validate)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	return mux
}

func (h *Handler) listCoverage(w http.ResponseWriter, r *http.Request) {
	prefix := coverage.SanitizePrefix(r.URL.Query().Get("search"))
	groups, keys := h.service.Snapshot().Filter(prefix)

	resp := coverageResponse{Total: groups.Total(), States: make([]stateCoverage, 0, len(keys))}
	for _, key := range keys {
		resp.States = append(resp.States, stateCoverage{State: key, Count: groups.Count(key), ZipCodes: groups[key]})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) checkZip(w http.ResponseWriter, r *http.Request) {
	zipcode, state, covered := h.service.CheckZip(r.PathValue("zip"))
	if zipcode == "" {
		writeError(w, http.StatusBadRequest, "zip must contain digits")
		return
	}

	writeJSON(w, http.StatusOK, zipResponse{Zipcode: zipcode, State: state, Covered: covered})
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" || lngStr == "" {
		writeError(w, http.StatusBadRequest, "missing required query parameters")
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, "lat must be a valid latitude")
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		writeError(w, http.StatusBadRequest, "lng must be a valid longitude")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), validateTimeout)
	defer cancel()

	result := h.service.ValidatePoint(ctx, models.Coordinates{Latitude: lat, Longitude: lng})
	h.log.DebugContext(ctx, "Point validated", "lat", lat, "lng", lng, "status", result.Status())

	writeJSON(w, http.StatusOK, validateResponse{Valid: result.Valid, Zipcode: result.Zipcode, Status: result.Status()})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.log.DebugContext(ctx, "Performing health checks...")

	status, body := http.StatusOK, "OK"
	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}

	h.log.DebugContext(ctx, "Health checks completed", "status", status)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
