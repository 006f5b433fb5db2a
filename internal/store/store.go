package store

import (
	"context"
	"fmt"

	"staffdesk/internal/review"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// DB is the subset of pgx the repositories use. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so the same repository code runs inside and outside a
// transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolation is the postgres error code for duplicate unique keys.
const uniqueViolation = "23505"

// Stores bundles one repository per entity over a shared pool and implements
// review.TxStore so the approval transition can run all of its statements in
// a single transaction.
type Stores struct {
	pool *pgxpool.Pool

	Applications *ApplicationRepository
	Providers    *ProviderRepository
	Companies    *CompanyRepository
	Bills        *BillRepository
	Jobs         *JobRepository
}

func New(pool *pgxpool.Pool) *Stores {
	return &Stores{
		pool: pool,

		Applications: NewApplicationRepository(pool),
		Providers:    NewProviderRepository(pool),
		Companies:    NewCompanyRepository(pool),
		Bills:        NewBillRepository(pool),
		Jobs:         NewJobRepository(pool),
	}
}

// WithTx runs fn against repositories bound to a single transaction. An error
// from fn rolls everything back.
func (s *Stores) WithTx(ctx context.Context, fn func(review.Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&txStores{
		applications: NewApplicationRepository(tx),
		providers:    NewProviderRepository(tx),
		companies:    NewCompanyRepository(tx),
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
