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

const providerTableName = "staffdesk.service_providers"

var providerColumns = utils.StructTagValues(types.ServiceProvider{})

type ProviderRepository struct {
	db DB
}

func NewProviderRepository(db DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Provider(ctx context.Context, providerID string) (*types.ServiceProvider, error) {

	query, args, err := psql().Select(providerColumns...).From(providerTableName).
		Where(sq.Eq{"id": providerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate provider query: %w", err)
	}

	var provider = new(types.ServiceProvider)
	err = pgxscan.Get(ctx, r.db, provider, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}

	return provider, nil
}

// ProviderByApplication looks up the provider provisioned from an
// application. Applications map to at most one provider.
func (r *ProviderRepository) ProviderByApplication(ctx context.Context, applicationID string) (*types.ServiceProvider, error) {

	query, args, err := psql().Select(providerColumns...).From(providerTableName).
		Where(sq.Eq{"application_id": applicationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate provider query: %w", err)
	}

	var provider = new(types.ServiceProvider)
	err = pgxscan.Get(ctx, r.db, provider, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}

	return provider, nil
}

func (r *ProviderRepository) Providers(ctx context.Context, activeOnly bool) ([]*types.ServiceProvider, error) {

	builder := psql().Select(providerColumns...).From(providerTableName).
		OrderBy("created_at desc")

	if activeOnly {
		builder = builder.Where(sq.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate providers query: %w", err)
	}

	var providers = make([]*types.ServiceProvider, 0)
	err = pgxscan.Select(ctx, r.db, &providers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}

	return providers, nil
}

func (r *ProviderRepository) CreateProvider(ctx context.Context, provider *types.ServiceProvider) error {

	now := time.Now()
	provider.ID = utils.NanoID()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	providerMap := utils.StructToMap(provider)

	query, args, err := psql().Insert(providerTableName).SetMap(providerMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert provider query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create provider")
}

func (r *ProviderRepository) UpdateProvider(ctx context.Context, providerID string, provider *types.ServiceProvider) error {

	provider.ID = providerID
	provider.UpdatedAt = time.Now()

	providerMap := utils.StructToMap(provider)
	delete(providerMap, "created_at")

	query, args, err := psql().Update(providerTableName).SetMap(providerMap).
		Where(sq.Eq{"id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update provider query for provider %s: %w", providerID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update provider")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrProviderNotFound
	}

	return nil
}
