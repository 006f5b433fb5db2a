package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffdesk/internal/utils"
	"staffdesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
)

const applicationTableName = "staffdesk.applications"

var applicationColumns = utils.StructTagValues(types.Application{})

type ApplicationRepository struct {
	db DB
}

func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Application(ctx context.Context, applicationID string) (*types.Application, error) {

	query, args, err := psql().Select(applicationColumns...).From(applicationTableName).
		Where(sq.Eq{"id": applicationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application query: %w", err)
	}

	var app = new(types.Application)
	err = pgxscan.Get(ctx, r.db, app, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return app, nil
}

func (r *ApplicationRepository) Applications(ctx context.Context, status *types.ApplicationStatus) ([]*types.Application, error) {

	builder := psql().Select(applicationColumns...).From(applicationTableName).
		OrderBy("created_at desc")

	if status != nil {
		builder = builder.Where(sq.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate applications query: %w", err)
	}

	var apps = make([]*types.Application, 0)
	err = pgxscan.Select(ctx, r.db, &apps, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	return apps, nil
}

// CreateApplication inserts a new submission. A duplicate email maps to
// types.ErrDuplicateEmail so the HTTP layer can answer with a conflict.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *types.Application) error {

	now := time.Now()
	app.ID = utils.NanoID()
	app.Status = types.ApplicationStatusPending
	app.CreatedAt = now
	app.UpdatedAt = now

	appMap := utils.StructToMap(app)

	query, args, err := psql().Insert(applicationTableName).SetMap(appMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert application query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return types.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// UpdateReview sets the terminal review fields. Identity fields are immutable
// after submission and are deliberately not touched here.
func (r *ApplicationRepository) UpdateReview(ctx context.Context, applicationID string, status types.ApplicationStatus, reviewedBy string, reviewedAt time.Time) error {

	query, args, err := psql().Update(applicationTableName).
		SetMap(map[string]any{
			"status":      status,
			"reviewed_at": reviewedAt,
			"reviewed_by": reviewedBy,
			"updated_at":  reviewedAt,
		}).
		Where(sq.Eq{"id": applicationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate review update query for application %s: %w", applicationID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update application review")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrApplicationNotFound
	}

	return nil
}
