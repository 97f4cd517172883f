package repository

import (
	"context"
	"log/slog"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of *pgxpool.Pool the repository needs.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	ReplaceCoverage(ctx context.Context, zips []string) error
	FetchCoverage(ctx context.Context) ([]string, error)
	FetchPendingChecks(ctx context.Context, limit int) ([]models.AddressCheck, error)
	SaveCheckResult(ctx context.Context, checkID int, record models.ValidationRecord) error
	IncrementFailureCount(ctx context.Context, checkID int, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
