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

const companyTableName = "staffdesk.companies"

var companyColumns = utils.StructTagValues(types.Company{})

type CompanyRepository struct {
	db DB
}

func NewCompanyRepository(db DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Company(ctx context.Context, companyID string) (*types.Company, error) {

	query, args, err := psql().Select(companyColumns...).From(companyTableName).
		Where(sq.Eq{"id": companyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company query: %w", err)
	}

	var company = new(types.Company)
	err = pgxscan.Get(ctx, r.db, company, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company: %w", err)
	}

	return company, nil
}

func (r *CompanyRepository) Companies(ctx context.Context, companyType *types.CompanyType) ([]*types.Company, error) {

	builder := psql().Select(companyColumns...).From(companyTableName).
		OrderBy("name asc")

	if companyType != nil {
		builder = builder.Where(sq.Eq{"type": *companyType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate companies query: %w", err)
	}

	var companies = make([]*types.Company, 0)
	err = pgxscan.Select(ctx, r.db, &companies, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}

	return companies, nil
}

func (r *CompanyRepository) CreateCompany(ctx context.Context, company *types.Company) error {

	now := time.Now()
	company.ID = utils.NanoID()
	company.CreatedAt = now
	company.UpdatedAt = now

	companyMap := utils.StructToMap(company)

	query, args, err := psql().Insert(companyTableName).SetMap(companyMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert company query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create company")
}

func (r *CompanyRepository) UpdateCompany(ctx context.Context, companyID string, company *types.Company) error {

	company.ID = companyID
	company.UpdatedAt = time.Now()

	companyMap := utils.StructToMap(company)
	delete(companyMap, "created_at")

	query, args, err := psql().Update(companyTableName).SetMap(companyMap).
		Where(sq.Eq{"id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update company query for company %s: %w", companyID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update company")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCompanyNotFound
	}

	return nil
}

// DeactivateCompany flips the active flag. Companies are never deleted
// because bills reference them.
func (r *CompanyRepository) DeactivateCompany(ctx context.Context, companyID string) error {

	query, args, err := psql().Update(companyTableName).
		SetMap(map[string]any{
			"active":     false,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate deactivate company query for company %s: %w", companyID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to deactivate company")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCompanyNotFound
	}

	return nil
}
