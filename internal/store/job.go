package store

import (
	"context"
	"fmt"
	"time"

	"staffdesk/internal/utils"
	"staffdesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const jobTableName = "staffdesk.jobs"

var jobColumns = utils.StructTagValues(types.Job{})

type JobRepository struct {
	db DB
}

func NewJobRepository(db DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Job(ctx context.Context, jobID string) (*types.Job, error) {

	query, args, err := psql().Select(jobColumns...).From(jobTableName).
		Where(sq.Eq{"id": jobID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate job query: %w", err)
	}

	var job = new(types.Job)
	err = pgxscan.Get(ctx, r.db, job, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	return job, nil
}

func (r *JobRepository) Jobs(ctx context.Context, activeOnly bool) ([]*types.Job, error) {

	builder := psql().Select(jobColumns...).From(jobTableName).
		OrderBy("name asc")

	if activeOnly {
		builder = builder.Where(sq.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate jobs query: %w", err)
	}

	var jobs = make([]*types.Job, 0)
	err = pgxscan.Select(ctx, r.db, &jobs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}

	return jobs, nil
}

// UpsertJob keeps the catalog in sync with the seed definitions. Seeded jobs
// carry fixed IDs, so conflicts update in place.
func (r *JobRepository) UpsertJob(ctx context.Context, job *types.Job) error {

	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	jobMap := utils.StructToMap(job)

	query, args, err := psql().Insert(jobTableName).SetMap(jobMap).
		Suffix("on conflict (id) do update set name = excluded.name, description = excluded.description, average_hourly_rate = excluded.average_hourly_rate, active = excluded.active, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert job query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert job")
}

func (r *JobRepository) UpdateJob(ctx context.Context, jobID string, job *types.Job) error {

	job.ID = jobID
	job.UpdatedAt = time.Now()

	jobMap := utils.StructToMap(job)
	delete(jobMap, "created_at")

	query, args, err := psql().Update(jobTableName).SetMap(jobMap).
		Where(sq.Eq{"id": jobID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update job query for job %s: %w", jobID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update job")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrJobNotFound
	}

	return nil
}
