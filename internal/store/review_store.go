package store

import (
	"context"
	"time"

	"staffdesk/pkg/types"
)

// Forwarders so *Stores satisfies review.Store outside a transaction.

func (s *Stores) Application(ctx context.Context, id string) (*types.Application, error) {
	return s.Applications.Application(ctx, id)
}

func (s *Stores) Company(ctx context.Context, id string) (*types.Company, error) {
	return s.Companies.Company(ctx, id)
}

func (s *Stores) ProviderByApplication(ctx context.Context, applicationID string) (*types.ServiceProvider, error) {
	return s.Providers.ProviderByApplication(ctx, applicationID)
}

func (s *Stores) CreateProvider(ctx context.Context, provider *types.ServiceProvider) error {
	return s.Providers.CreateProvider(ctx, provider)
}

func (s *Stores) UpdateProvider(ctx context.Context, providerID string, provider *types.ServiceProvider) error {
	return s.Providers.UpdateProvider(ctx, providerID, provider)
}

func (s *Stores) UpdateApplicationReview(ctx context.Context, applicationID string, status types.ApplicationStatus, reviewedBy string, reviewedAt time.Time) error {
	return s.Applications.UpdateReview(ctx, applicationID, status, reviewedBy, reviewedAt)
}

// txStores is the transaction-bound view handed to review.Service inside
// Stores.WithTx.
type txStores struct {
	applications *ApplicationRepository
	providers    *ProviderRepository
	companies    *CompanyRepository
}

func (t *txStores) Application(ctx context.Context, id string) (*types.Application, error) {
	return t.applications.Application(ctx, id)
}

func (t *txStores) Company(ctx context.Context, id string) (*types.Company, error) {
	return t.companies.Company(ctx, id)
}

func (t *txStores) ProviderByApplication(ctx context.Context, applicationID string) (*types.ServiceProvider, error) {
	return t.providers.ProviderByApplication(ctx, applicationID)
}

func (t *txStores) CreateProvider(ctx context.Context, provider *types.ServiceProvider) error {
	return t.providers.CreateProvider(ctx, provider)
}

func (t *txStores) UpdateProvider(ctx context.Context, providerID string, provider *types.ServiceProvider) error {
	return t.providers.UpdateProvider(ctx, providerID, provider)
}

func (t *txStores) UpdateApplicationReview(ctx context.Context, applicationID string, status types.ApplicationStatus, reviewedBy string, reviewedAt time.Time) error {
	return t.applications.UpdateReview(ctx, applicationID, status, reviewedBy, reviewedAt)
}
