package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/coverage"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/coverageapi"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/geocoding"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/metrics"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/repository"
)

const checkBatchLimit = 100

// Options tunes the background loop of CoverageService.
type Options struct {
	ProviderName string        // Name of the geocoding provider for metrics labeling
	Workers      int           // Number of concurrent workers for address checks
	PollInterval time.Duration // Interval between sync and check rounds
	FetchLimit   int           // Maximum number of ZIP codes requested from the coverage API
}

// CoverageService keeps the coverage snapshot fresh and answers coverage questions.
// It syncs the coverage list from the remote API into the repository, and
// validates queued address checks with a pool of workers.
type CoverageService struct {
	log       *slog.Logger           // Logger for logging service activities
	repo      repository.Interface   // Interface for data repository access
	source    coverageapi.Source     // Remote coverage list
	validator *coverage.Validator    // Reverse geocoding backed validator
	resolver  coverage.StateResolver // ZIP to state resolver used for grouping
	metrics   *metrics.Metrics       // Metrics for tracking service performance
	opts      Options

	mu       sync.RWMutex
	snapshot *coverage.Snapshot
}

// NewCoverageService creates a new instance of CoverageService with an empty snapshot.
func NewCoverageService(
	log *slog.Logger,
	repo repository.Interface,
	source coverageapi.Source,
	validator *coverage.Validator,
	resolver coverage.StateResolver,
	metrics *metrics.Metrics,
	opts Options,
) *CoverageService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &CoverageService{
		log:       log,
		repo:      repo,
		source:    source,
		validator: validator,
		resolver:  resolver,
		metrics:   metrics,
		opts:      opts,
		snapshot:  coverage.NewSnapshot(resolver, nil),
	}
}

// Snapshot returns the current memoized coverage view.
func (cs *CoverageService) Snapshot() *coverage.Snapshot {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.snapshot
}

func (cs *CoverageService) setSnapshot(snapshot *coverage.Snapshot) {
	cs.mu.Lock()
	cs.snapshot = snapshot
	cs.mu.Unlock()

	cs.metrics.CoverageZips.Set(float64(snapshot.Total()))
}

// Sync refreshes the coverage snapshot from the remote API and persists it.
// When the API is unreachable the stored list is served instead; an error is
// returned only when neither source is available.
func (cs *CoverageService) Sync(ctx context.Context) error {
	zips, err := cs.source.FetchCoverage(ctx, cs.opts.FetchLimit)
	if err != nil {
		cs.log.ErrorContext(ctx, "Failed to fetch coverage list, falling back to stored list", "error", err)

		stored, errRepo := cs.repo.FetchCoverage(ctx)
		if errRepo != nil {
			cs.metrics.CoverageSyncs.WithLabelValues("failure").Inc()
			return fmt.Errorf("failed to load coverage list: %w", errors.Join(err, errRepo))
		}

		cs.setSnapshot(coverage.NewSnapshot(cs.resolver, stored))
		cs.metrics.CoverageSyncs.WithLabelValues("fallback").Inc()
		cs.log.WarnContext(ctx, "Serving stored coverage list", "zip_codes", len(stored))

		return nil
	}

	snapshot := coverage.NewSnapshot(cs.resolver, zips)
	cs.setSnapshot(snapshot)

	if err = cs.repo.ReplaceCoverage(ctx, snapshot.Zips()); err != nil {
		cs.log.ErrorContext(ctx, "Failed to persist coverage list", "error", err)
	}

	cs.metrics.CoverageSyncs.WithLabelValues("success").Inc()
	cs.log.InfoContext(ctx, "Coverage list synced", "zip_codes", snapshot.Total(), "states", len(snapshot.Keys()))

	return nil
}

// CheckZip canonicalizes zipcode and reports its state and whether it is covered.
// The state is coverage.OtherBucket when the ZIP matches no state range.
func (cs *CoverageService) CheckZip(zipcode string) (string, string, bool) {
	normalized := coverage.CanonicalZip(zipcode)

	state, ok := cs.resolver.Resolve(normalized)
	if !ok {
		state = coverage.OtherBucket
	}

	return normalized, state, cs.Snapshot().Covers(normalized)
}

// ValidatePoint reverse geocodes point and checks it against the current snapshot.
func (cs *CoverageService) ValidatePoint(ctx context.Context, point models.Coordinates) coverage.ValidationResult {
	startTime := time.Now()
	result := cs.validator.ValidateAgainst(ctx, point, cs.Snapshot().Set())
	cs.metrics.RequestSeconds.WithLabelValues(cs.opts.ProviderName).Observe(time.Since(startTime).Seconds())
	cs.metrics.Validations.WithLabelValues(string(result.Status())).Inc()

	return result
}

// Run syncs once, then periodically re-syncs and processes queued address checks.
// It listens for a cancellation signal from the context to gracefully stop the service.
func (cs *CoverageService) Run(ctx context.Context) {
	if err := cs.Sync(ctx); err != nil {
		cs.log.ErrorContext(ctx, "Initial coverage sync failed", "error", err)
	}

	ticker := time.NewTicker(cs.opts.PollInterval)
	defer ticker.Stop()

	cs.log.InfoContext(ctx, "Coverage service started...")

	for {
		select {
		case <-ctx.Done():
			cs.log.InfoContext(ctx, "Coverage service stopped.")
			return
		case <-ticker.C:
			if err := cs.Sync(ctx); err != nil {
				cs.log.ErrorContext(ctx, "Coverage sync failed", "error", err)
			}
			cs.log.InfoContext(ctx, "Polling for address checks...")
			cs.processChecks(ctx)
		}
	}
}

// processChecks fetches pending address checks, starts a worker pool to process them,
// and waits for all workers to finish.
func (cs *CoverageService) processChecks(ctx context.Context) {
	checks, err := cs.repo.FetchPendingChecks(ctx, checkBatchLimit)
	if err != nil {
		cs.log.ErrorContext(ctx, "Failed to fetch address checks", "error", err)
		return
	}
	if len(checks) == 0 {
		cs.log.InfoContext(ctx, "No address checks to process.")
		return
	}

	cs.log.InfoContext(
		ctx,
		"Found address checks to process. Starting worker pool.",
		"jobs",
		len(checks),
		"num_workers",
		cs.opts.Workers,
	)

	snapshot := cs.Snapshot()
	jobs := make(chan models.AddressCheck, len(checks))
	var wgr sync.WaitGroup

	for i := 1; i <= cs.opts.Workers; i++ {
		wgr.Add(1)
		go cs.worker(ctx, i, &wgr, snapshot, jobs)
	}

	for _, check := range checks {
		jobs <- check
	}
	close(jobs)

	wgr.Wait()
	cs.log.InfoContext(ctx, "Processing batch finished")
}

// worker validates address checks from the jobs channel against snapshot.
// A check whose postal code cannot be determined has its failure count incremented
// so it is retried on a later round, up to the repository's attempt limit.
func (cs *CoverageService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	snapshot *coverage.Snapshot,
	jobs <-chan models.AddressCheck,
) {
	defer wg.Done()
	for check := range jobs {
		cs.metrics.ActiveWorkers.Inc()
		cs.log.DebugContext(ctx, "Processing address check", "worker", idx, "check", check.ID)

		startTime := time.Now()
		zipcode, err := cs.validator.PostalCode(ctx, check.Point)
		cs.metrics.RequestSeconds.WithLabelValues(cs.opts.ProviderName).Observe(time.Since(startTime).Seconds())

		if err != nil {
			cs.log.ErrorContext(ctx, "Failed to reverse geocode", "worker", idx, "check", check.ID, "error", err)
			cs.metrics.ChecksProcessed.WithLabelValues("failure").Inc()
			cs.metrics.Validations.WithLabelValues(string(coverage.StatusUnknown)).Inc()
			if !errors.Is(err, geocoding.ErrNoPostalCode) {
				cs.metrics.APIErrors.Inc()
			}

			if err = cs.repo.IncrementFailureCount(ctx, check.ID, err.Error()); err != nil {
				cs.log.ErrorContext(
					ctx,
					"Could not update failure count for address check",
					"worker", idx,
					"check", check.ID,
					"error", err,
				)
			}
			cs.metrics.ActiveWorkers.Dec()
			continue
		}

		record := models.ValidationRecord{Zipcode: zipcode, Covered: snapshot.Covers(zipcode)}
		verdict := coverage.StatusNotCovered
		if record.Covered {
			verdict = coverage.StatusCovered
		}
		cs.metrics.ChecksProcessed.WithLabelValues("success").Inc()
		cs.metrics.Validations.WithLabelValues(string(verdict)).Inc()

		if err = cs.repo.SaveCheckResult(ctx, check.ID, record); err != nil {
			cs.log.ErrorContext(
				ctx,
				"Failed to save result for address check",
				"worker", idx,
				"check", check.ID,
				"error", err,
			)
		} else {
			cs.log.DebugContext(ctx, "Worker successfully processed the address check",
				"worker", idx, "check", check.ID, "zipcode", zipcode, "covered", record.Covered)
		}

		cs.metrics.ActiveWorkers.Dec()
	}
}
