package store

import (
	"context"
	"fmt"
	"testing"

	"staffdesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errDB satisfies DB and fails every statement with a fixed error, so the
// repositories' error mapping can be exercised without a database.
type errDB struct {
	err error
}

func (e *errDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, e.err
}

func (e *errDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, e.err
}

func (e *errDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	panic("not used")
}

func TestBillNumberFormat(t *testing.T) {
	assert.Equal(t, "INV-000042", fmt.Sprintf(billNumberFormat, 42))
	assert.Equal(t, "INV-1000000", fmt.Sprintf(billNumberFormat, 1000000))
}

func TestApplicationColumnsIncludeEmbeddedAddress(t *testing.T) {
	assert.Contains(t, applicationColumns, "street")
	assert.Contains(t, applicationColumns, "zip_code")
	assert.Contains(t, applicationColumns, "status")
	assert.NotContains(t, applicationColumns, "Address")
}

func TestCreateApplicationMapsUniqueViolation(t *testing.T) {
	repo := NewApplicationRepository(&errDB{err: &pgconn.PgError{Code: uniqueViolation}})

	err := repo.CreateApplication(context.Background(), &types.Application{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
	})

	assert.ErrorIs(t, err, types.ErrDuplicateEmail)
}

func TestCreateApplicationWrapsOtherErrors(t *testing.T) {
	cause := &pgconn.PgError{Code: "53300", Message: "too many connections"}
	repo := NewApplicationRepository(&errDB{err: cause})

	err := repo.CreateApplication(context.Background(), &types.Application{Email: "maria@example.com"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrDuplicateEmail)
	assert.ErrorIs(t, err, cause)
}

func TestSelectQueriesUseDollarPlaceholders(t *testing.T) {
	query, args, err := psql().Select(applicationColumns...).From(applicationTableName).
		Where(sq.Eq{"id": "app-1"}).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "$1")
	assert.Equal(t, []any{"app-1"}, args)
}
