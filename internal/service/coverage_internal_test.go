package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/coverage"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/geocoding"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/metrics"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/zipstate"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fixture struct {
	repo     *mocks.Interface
	source   *mocks.Source
	geocoder *mocks.ReverseGeocoder
	metrics  *metrics.Metrics
	service  *CoverageService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := mocks.NewInterface(t)
	source := mocks.NewSource(t)
	geocoder := mocks.NewReverseGeocoder(t)
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	svc := NewCoverageService(
		logger,
		repo,
		source,
		coverage.NewValidator(geocoder, logger),
		zipstate.DefaultTable(),
		appMetrics,
		Options{ProviderName: "google", Workers: 2, PollInterval: time.Second, FetchLimit: 500},
	)

	return fixture{repo: repo, source: source, geocoder: geocoder, metrics: appMetrics, service: svc}
}

func TestSync(t *testing.T) {
	ctx := t.Context()

	t.Run("successfull sync", func(t *testing.T) {
		fx := newFixture(t)
		fx.source.On("FetchCoverage", ctx, 500).Return([]string{"07102", "07103", "10001", "07102-1111"}, nil).Once()
		fx.repo.On("ReplaceCoverage", ctx, []string{"07102", "07103", "10001", "07102"}).Return(nil).Once()

		require.NoError(t, fx.service.Sync(ctx))

		snapshot := fx.service.Snapshot()
		assert.Equal(t, coverage.Groups{"NJ": {"07102", "07103"}, "NY": {"10001"}}, snapshot.Groups())
		assert.Equal(t, []string{"NJ", "NY"}, snapshot.Keys())
		assert.Equal(t, 3, snapshot.Total())
		assert.InDelta(t, 3, testutil.ToFloat64(fx.metrics.CoverageZips), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(fx.metrics.CoverageSyncs.WithLabelValues("success")), 0)
	})

	t.Run("persisting fails but snapshot is refreshed", func(t *testing.T) {
		fx := newFixture(t)
		fx.source.On("FetchCoverage", ctx, 500).Return([]string{"10001"}, nil).Once()
		fx.repo.On("ReplaceCoverage", ctx, []string{"10001"}).Return(assert.AnError).Once()

		require.NoError(t, fx.service.Sync(ctx))

		assert.True(t, fx.service.Snapshot().Covers("10001"))
	})

	t.Run("remote fails and stored list is served", func(t *testing.T) {
		fx := newFixture(t)
		fx.source.On("FetchCoverage", ctx, 500).Return(nil, assert.AnError).Once()
		fx.repo.On("FetchCoverage", ctx).Return([]string{"07102"}, nil).Once()

		require.NoError(t, fx.service.Sync(ctx))

		assert.True(t, fx.service.Snapshot().Covers("07102"))
		assert.InDelta(t, 1, testutil.ToFloat64(fx.metrics.CoverageSyncs.WithLabelValues("fallback")), 0)
	})

	t.Run("remote and stored list both fail", func(t *testing.T) {
		fx := newFixture(t)
		repoErr := errors.New("db down")
		fx.source.On("FetchCoverage", ctx, 500).Return(nil, assert.AnError).Once()
		fx.repo.On("FetchCoverage", ctx).Return(nil, repoErr).Once()

		err := fx.service.Sync(ctx)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorIs(t, err, repoErr)
		assert.Equal(t, 0, fx.service.Snapshot().Total())
		assert.InDelta(t, 1, testutil.ToFloat64(fx.metrics.CoverageSyncs.WithLabelValues("failure")), 0)
	})
}

func TestCheckZip(t *testing.T) {
	ctx := t.Context()
	fx := newFixture(t)
	fx.source.On("FetchCoverage", ctx, 500).Return([]string{"07102", "10001"}, nil).Once()
	fx.repo.On("ReplaceCoverage", ctx, mock.Anything).Return(nil).Once()
	require.NoError(t, fx.service.Sync(ctx))

	zip, state, covered := fx.service.CheckZip("07102-1234")
	assert.Equal(t, "07102", zip)
	assert.Equal(t, "NJ", state)
	assert.True(t, covered)

	zip, state, covered = fx.service.CheckZip("90210")
	assert.Equal(t, "90210", zip)
	assert.Equal(t, "CA", state)
	assert.False(t, covered)

	_, state, covered = fx.service.CheckZip("00000")
	assert.Equal(t, coverage.OtherBucket, state)
	assert.False(t, covered)
}

func TestValidatePoint(t *testing.T) {
	ctx := t.Context()
	point := models.Coordinates{Latitude: 40.7357, Longitude: -74.1724}
	fx := newFixture(t)
	fx.source.On("FetchCoverage", ctx, 500).Return([]string{"07102"}, nil).Once()
	fx.repo.On("ReplaceCoverage", ctx, mock.Anything).Return(nil).Once()
	require.NoError(t, fx.service.Sync(ctx))

	t.Run("covered", func(t *testing.T) {
		fx.geocoder.On("ReverseGeocode", ctx, point).Return("07102", nil).Once()

		result := fx.service.ValidatePoint(ctx, point)

		assert.Equal(t, coverage.StatusCovered, result.Status())
	})

	t.Run("not covered", func(t *testing.T) {
		fx.geocoder.On("ReverseGeocode", ctx, point).Return("07104", nil).Once()

		result := fx.service.ValidatePoint(ctx, point)

		assert.Equal(t, coverage.StatusNotCovered, result.Status())
		require.NotNil(t, result.Zipcode)
		assert.Equal(t, "07104", *result.Zipcode)
	})

	t.Run("unknown", func(t *testing.T) {
		fx.geocoder.On("ReverseGeocode", ctx, point).Return("", geocoding.ErrNoPostalCode).Once()

		result := fx.service.ValidatePoint(ctx, point)

		assert.Equal(t, coverage.StatusUnknown, result.Status())
		assert.Nil(t, result.Zipcode)
	})

	assert.InDelta(t, 1, testutil.ToFloat64(fx.metrics.Validations.WithLabelValues("covered")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(fx.metrics.Validations.WithLabelValues("not_covered")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(fx.metrics.Validations.WithLabelValues("unknown")), 0)
}

func TestProcessChecks(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := t.Context()
	fx := newFixture(t)
	fx.source.On("FetchCoverage", ctx, 500).Return([]string{"07102", "10001"}, nil).Once()
	fx.repo.On("ReplaceCoverage", ctx, mock.Anything).Return(nil).Once()
	require.NoError(t, fx.service.Sync(ctx))

	newark := models.Coordinates{Latitude: 40.7357, Longitude: -74.1724}
	beverlyHills := models.Coordinates{Latitude: 34.0736, Longitude: -118.4004}
	ocean := models.Coordinates{Latitude: 39.0, Longitude: -70.0}

	t.Run("successfull processing", func(t *testing.T) {
		checks := []models.AddressCheck{{ID: 1, Point: newark}, {ID: 2, Point: beverlyHills}}

		fx.repo.On("FetchPendingChecks", ctx, 100).Return(checks, nil).Once()
		fx.geocoder.On("ReverseGeocode", ctx, newark).Return("07102-3301", nil).Once()
		fx.geocoder.On("ReverseGeocode", ctx, beverlyHills).Return("90210", nil).Once()
		fx.repo.On("SaveCheckResult", ctx, 1, models.ValidationRecord{Zipcode: "07102", Covered: true}).
			Return(nil).Once()
		fx.repo.On("SaveCheckResult", ctx, 2, models.ValidationRecord{Zipcode: "90210", Covered: false}).
			Return(nil).Once()

		fx.service.processChecks(ctx)

		fx.repo.AssertExpectations(t)
		fx.geocoder.AssertExpectations(t)
	})

	t.Run("fetch checks return error", func(t *testing.T) {
		fx.repo.On("FetchPendingChecks", ctx, 100).Return(nil, assert.AnError).Once()

		fx.service.processChecks(ctx)

		fx.repo.AssertExpectations(t)
	})

	t.Run("fetch checks return empty list", func(t *testing.T) {
		fx.repo.On("FetchPendingChecks", ctx, 100).Return([]models.AddressCheck{}, nil).Once()

		fx.service.processChecks(ctx)

		fx.repo.AssertExpectations(t)
	})

	t.Run("geocoding provider returns error", func(t *testing.T) {
		before := testutil.ToFloat64(fx.metrics.APIErrors)
		fx.repo.On("FetchPendingChecks", ctx, 100).Return([]models.AddressCheck{{ID: 3, Point: newark}}, nil).Once()
		fx.geocoder.On("ReverseGeocode", ctx, newark).Return("", assert.AnError).Once()
		fx.repo.On("IncrementFailureCount", ctx, 3, mock.AnythingOfType("string")).Return(nil).Once()

		fx.service.processChecks(ctx)

		fx.repo.AssertExpectations(t)
		assert.InDelta(t, before+1, testutil.ToFloat64(fx.metrics.APIErrors), 0)
	})

	t.Run("no postal code is not an api error", func(t *testing.T) {
		before := testutil.ToFloat64(fx.metrics.APIErrors)
		fx.repo.On("FetchPendingChecks", ctx, 100).Return([]models.AddressCheck{{ID: 4, Point: ocean}}, nil).Once()
		fx.geocoder.On("ReverseGeocode", ctx, ocean).Return("", geocoding.ErrNoPostalCode).Once()
		fx.repo.On("IncrementFailureCount", ctx, 4, geocoding.ErrNoPostalCode.Error()).Return(assert.AnError).Once()

		fx.service.processChecks(ctx)

		fx.repo.AssertExpectations(t)
		assert.InDelta(t, before, testutil.ToFloat64(fx.metrics.APIErrors), 0)
	})

	t.Run("error to save check result", func(t *testing.T) {
		fx.repo.On("FetchPendingChecks", ctx, 100).Return([]models.AddressCheck{{ID: 5, Point: newark}}, nil).Once()
		fx.geocoder.On("ReverseGeocode", ctx, newark).Return("07102", nil).Once()
		fx.repo.On("SaveCheckResult", ctx, 5, models.ValidationRecord{Zipcode: "07102", Covered: true}).
			Return(assert.AnError).Once()

		fx.service.processChecks(ctx)

		fx.repo.AssertExpectations(t)
		assert.InDelta(t, 0, testutil.ToFloat64(fx.metrics.ActiveWorkers), 0)
	})
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("start context cancelled", func(t *testing.T) {
		fx := newFixture(t)
		fx.source.On("FetchCoverage", mock.Anything, 500).Return(nil, assert.AnError).Once()
		fx.repo.On("FetchCoverage", mock.Anything).Return([]string{"10001"}, nil).Once()

		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		fx.service.Run(tctx)

		assert.True(t, fx.service.Snapshot().Covers("10001"))
	})
}

func TestNewCoverageService_MinimumWorkers(t *testing.T) {
	logger := slog.Default()
	svc := NewCoverageService(logger, nil, nil, coverage.NewValidator(nil, logger), zipstate.DefaultTable(),
		metrics.NewMetrics(prometheus.NewRegistry()), Options{Workers: 0})

	assert.Equal(t, 1, svc.opts.Workers)
	assert.Equal(t, 0, svc.Snapshot().Total())
}
