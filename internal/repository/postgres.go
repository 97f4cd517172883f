package repository

import (
	"context"
	"fmt"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"github.com/jackc/pgx/v5"
)

const maxValidationAttempts = 5

// EnsureSchema creates the coverage table when it does not exist yet.
// The address_checks table is owned by the main application.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS public.coverage_zip_codes (
			zip_code   VARCHAR(5) PRIMARY KEY,
			synced_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create coverage table: %w", err)
	}

	return nil
}

// ReplaceCoverage swaps the stored coverage list for zips in a single transaction.
// Duplicate entries are stored once, keeping the first occurrence.
func (r *Repository) ReplaceCoverage(ctx context.Context, zips []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin coverage transaction: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM public.coverage_zip_codes;`); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to clear coverage list: %w", err)
	}

	rows := uniqueRows(zips)
	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"coverage_zip_codes"},
		[]string{"zip_code"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to copy coverage list: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit coverage list: %w", err)
	}

	r.log.DebugContext(ctx, "Coverage list replaced", "rows", copied)

	return nil
}

// FetchCoverage returns the stored coverage list ordered by ZIP code.
func (r *Repository) FetchCoverage(ctx context.Context) ([]string, error) {
	query := `
		SELECT zip_code
		FROM public.coverage_zip_codes
		ORDER BY zip_code ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage list: %w", err)
	}
	defer rows.Close()

	var zips []string
	for rows.Next() {
		var zip string
		if errScan := rows.Scan(&zip); errScan != nil {
			return nil, fmt.Errorf("failed to scan coverage zip code: %w", errScan)
		}
		zips = append(zips, zip)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return zips, nil
}

// FetchPendingChecks retrieves address checks that still need a coverage verdict.
// It returns checks without a result and with fewer than 5 validation attempts,
// ordered by creation date and limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of checks to retrieve.
//
// Returns:
// - A slice of models.AddressCheck containing the checks that match the criteria.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchPendingChecks(ctx context.Context, limit int) ([]models.AddressCheck, error) {
	var checks []models.AddressCheck
	query := `
		SELECT check_id, latitude, longitude
		FROM public.address_checks
		WHERE
			is_covered IS NULL
			AND validation_attempts < $1
			AND latitude IS NOT NULL
			AND longitude IS NOT NULL
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, maxValidationAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending address checks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var check models.AddressCheck
		if errScan := rows.Scan(&check.ID, &check.Point.Latitude, &check.Point.Longitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending address check: %w", errScan)
		}
		r.log.DebugContext(ctx, "A new pending address check has been received.",
			"ID", check.ID, "lat", check.Point.Latitude, "lng", check.Point.Longitude)
		checks = append(checks, check)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return checks, nil
}

// SaveCheckResult stores the postal code and coverage verdict of a check and clears its error.
func (r *Repository) SaveCheckResult(ctx context.Context, checkID int, record models.ValidationRecord) error {
	query := `
		UPDATE public.address_checks
		SET
			zip_code = $1,
			is_covered = $2,
			checked_at = now(),
			validation_error = NULL
		WHERE
			check_id = $3;
	`

	_, err := r.db.Exec(ctx, query, record.Zipcode, record.Covered, checkID)
	if err != nil {
		return fmt.Errorf("failed to save address check result: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the validation attempt count for a specific check
// identified by checkID and updates the associated error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, checkID int, errMsg string) error {
	query := `
		UPDATE public.address_checks
		SET
			validation_attempts = validation_attempts + 1,
			validation_error = $1
		WHERE check_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, checkID)
	if err != nil {
		return fmt.Errorf("failed to update validation error and number of attempts: %w", err)
	}

	return nil
}

func uniqueRows(zips []string) [][]any {
	seen := make(map[string]struct{}, len(zips))
	rows := make([][]any, 0, len(zips))
	for _, zip := range zips {
		if _, ok := seen[zip]; ok {
			continue
		}
		seen[zip] = struct{}{}
		rows = append(rows, []any{zip})
	}

	return rows
}
