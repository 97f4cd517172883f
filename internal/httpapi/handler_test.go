package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/coverage"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/httpapi"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/zipstate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	snapshot *coverage.Snapshot
	result   coverage.ValidationResult
	points   []models.Coordinates
}

func (f *fakeService) Snapshot() *coverage.Snapshot { return f.snapshot }

func (f *fakeService) CheckZip(zipcode string) (string, string, bool) {
	normalized := coverage.CanonicalZip(zipcode)
	state, ok := zipstate.DefaultTable().Resolve(normalized)
	if !ok {
		state = coverage.OtherBucket
	}

	return normalized, state, f.snapshot.Covers(normalized)
}

func (f *fakeService) ValidatePoint(_ context.Context, point models.Coordinates) coverage.ValidationResult {
	f.points = append(f.points, point)
	return f.result
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newServer(svc *fakeService, pinger httpapi.Pinger) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "coverage_test_total", Help: "test"}))

	return httpapi.NewHandler(slog.Default(), svc, pinger, reg).Routes()
}

func do(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))

	return v
}

type coverageBody struct {
	Total  int `json:"total"`
	States []struct {
		State    string   `json:"state"`
		Count    int      `json:"count"`
		ZipCodes []string `json:"zipCodes"`
	} `json:"states"`
}

func TestListCoverage(t *testing.T) {
	svc := &fakeService{
		snapshot: coverage.NewSnapshot(zipstate.DefaultTable(), []string{"10001", "07103", "00000", "07102"}),
	}
	handler := newServer(svc, nil)

	t.Run("full list", func(t *testing.T) {
		rec := do(t, handler, "/api/v1/coverage")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		body := decode[coverageBody](t, rec)
		assert.Equal(t, 4, body.Total)
		require.Len(t, body.States, 3)
		assert.Equal(t, "NJ", body.States[0].State)
		assert.Equal(t, 2, body.States[0].Count)
		assert.Equal(t, []string{"07102", "07103"}, body.States[0].ZipCodes)
		assert.Equal(t, "NY", body.States[1].State)
		assert.Equal(t, coverage.OtherBucket, body.States[2].State)
	})

	t.Run("sanitized search", func(t *testing.T) {
		rec := do(t, handler, "/api/v1/coverage?search=0a7-1")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[coverageBody](t, rec)
		assert.Equal(t, 2, body.Total)
		require.Len(t, body.States, 1)
		assert.Equal(t, "NJ", body.States[0].State)
	})

	t.Run("search without matches", func(t *testing.T) {
		rec := do(t, handler, "/api/v1/coverage?search=9")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[coverageBody](t, rec)
		assert.Equal(t, 0, body.Total)
		assert.Empty(t, body.States)
	})
}

func TestCheckZip(t *testing.T) {
	svc := &fakeService{snapshot: coverage.NewSnapshot(zipstate.DefaultTable(), []string{"07102"})}
	handler := newServer(svc, nil)

	tests := []struct {
		name    string
		target  string
		code    int
		zipcode string
		state   string
		covered bool
	}{
		{name: "covered zip+4", target: "/api/v1/coverage/zip/07102-1234", code: 200, zipcode: "07102", state: "NJ", covered: true},
		{name: "not covered", target: "/api/v1/coverage/zip/10001", code: 200, zipcode: "10001", state: "NY"},
		{name: "unknown range", target: "/api/v1/coverage/zip/00000", code: 200, zipcode: "00000", state: "Other"},
		{name: "no digits", target: "/api/v1/coverage/zip/abc", code: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, handler, tt.target)
			require.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
				return
			}

			body := decode[struct {
				Zipcode string `json:"zipcode"`
				State   string `json:"state"`
				Covered bool   `json:"covered"`
			}](t, rec)
			assert.Equal(t, tt.zipcode, body.Zipcode)
			assert.Equal(t, tt.state, body.State)
			assert.Equal(t, tt.covered, body.Covered)
		})
	}
}

func TestValidate(t *testing.T) {
	zipcode := "07102"

	t.Run("invalid parameters", func(t *testing.T) {
		svc := &fakeService{snapshot: coverage.NewSnapshot(zipstate.DefaultTable(), nil)}
		handler := newServer(svc, nil)

		for _, target := range []string{
			"/api/v1/coverage/validate",
			"/api/v1/coverage/validate?lat=40.7",
			"/api/v1/coverage/validate?lat=abc&lng=-74.1",
			"/api/v1/coverage/validate?lat=91&lng=-74.1",
			"/api/v1/coverage/validate?lat=40.7&lng=-181",
			"/api/v1/coverage/validate?lat=NaN&lng=-74.1",
			"/api/v1/coverage/validate?lat=40.7&lng=nan",
			"/api/v1/coverage/validate?lat=Inf&lng=-74.1",
		} {
			rec := do(t, handler, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
		assert.Empty(t, svc.points)
	})

	t.Run("covered", func(t *testing.T) {
		svc := &fakeService{result: coverage.ValidationResult{Valid: true, Zipcode: &zipcode}}
		rec := do(t, newServer(svc, nil), "/api/v1/coverage/validate?lat=40.7357&lng=-74.1724")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[map[string]any](t, rec)
		assert.Equal(t, true, body["valid"])
		assert.Equal(t, "07102", body["zipcode"])
		assert.Equal(t, "covered", body["status"])
		require.Len(t, svc.points, 1)
		assert.Equal(t, models.Coordinates{Latitude: 40.7357, Longitude: -74.1724}, svc.points[0])
	})

	t.Run("unknown keeps null zipcode", func(t *testing.T) {
		svc := &fakeService{result: coverage.ValidationResult{}}
		rec := do(t, newServer(svc, nil), "/api/v1/coverage/validate?lat=0&lng=0")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[map[string]any](t, rec)
		assert.Equal(t, false, body["valid"])
		assert.Contains(t, body, "zipcode")
		assert.Nil(t, body["zipcode"])
		assert.Equal(t, "unknown", body["status"])
	})
}

func TestHealthz(t *testing.T) {
	svc := &fakeService{snapshot: coverage.NewSnapshot(zipstate.DefaultTable(), nil)}

	rec := do(t, newServer(svc, fakePinger{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, newServer(svc, fakePinger{err: errors.New("down")}), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "DB ping failed", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	svc := &fakeService{snapshot: coverage.NewSnapshot(zipstate.DefaultTable(), nil)}

	rec := do(t, newServer(svc, nil), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coverage_test_total")
}
