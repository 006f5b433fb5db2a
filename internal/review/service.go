// Package review implements the application review transition: approving an
// application provisions (or reactivates) its service provider, rejecting it
// deactivates the provider. The whole transition runs in one transaction.
package review

import (
	"context"
	"errors"
	"time"

	"staffdesk/internal/billing"
	"staffdesk/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the slice of the datastore the transition needs. The pgx
// implementation lives in internal/store; tests use an in-memory fake.
type Store interface {
	Application(ctx context.Context, id string) (*types.Application, error)
	Company(ctx context.Context, id string) (*types.Company, error)
	ProviderByApplication(ctx context.Context, applicationID string) (*types.ServiceProvider, error)
	CreateProvider(ctx context.Context, provider *types.ServiceProvider) error
	UpdateProvider(ctx context.Context, providerID string, provider *types.ServiceProvider) error
	UpdateApplicationReview(ctx context.Context, applicationID string, status types.ApplicationStatus, reviewedBy string, reviewedAt time.Time) error
}

// TxStore additionally runs a function inside a transaction. An error from fn
// rolls the whole transaction back.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}

type Input struct {
	ApplicationID string
	Status        types.ApplicationStatus
	ReviewerID    string

	// Approval-only fields. When omitted they fall back to the values the
	// applicant supplied on the application.
	Services   []string
	HourlyRate *decimal.Decimal
	AssignedTo *string

	// Optional client to quote the approved provider against.
	QuoteClientID *string
}

type Result struct {
	Application *types.Application
	Provider    *types.ServiceProvider

	// Per-hour pricing of the approved provider against QuoteClientID's
	// markup/commission terms. Informational only, nothing is persisted.
	Quote *billing.Totals
}

type Service struct {
	logger *logrus.Logger
	store  TxStore
	now    func() time.Time
}

func NewService(logger *logrus.Logger, store TxStore) *Service {
	return &Service{
		logger: logger,
		store:  store,
		now:    time.Now,
	}
}

// Review moves an application to approved or rejected and synchronizes the
// derived service provider. Re-reviewing an already reviewed application is
// allowed and re-runs the same transition; the status is settable to either
// terminal value from any prior state.
func (s *Service) Review(ctx context.Context, in Input) (*Result, error) {

	if in.Status != types.ApplicationStatusApproved && in.Status != types.ApplicationStatusRejected {
		return nil, types.NewValidationError("status", "must be approved or rejected")
	}

	app, err := s.store.Application(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	var provider *types.ServiceProvider

	err = s.store.WithTx(ctx, func(tx Store) error {

		existing, err := tx.ProviderByApplication(ctx, app.ID)
		if err != nil && !errors.Is(err, types.ErrProviderNotFound) {
			return err
		}

		switch in.Status {
		case types.ApplicationStatusApproved:
			provider, err = s.approve(ctx, tx, app, existing, in)
		case types.ApplicationStatusRejected:
			provider, err = s.reject(ctx, tx, existing)
		}
		if err != nil {
			return err
		}

		return tx.UpdateApplicationReview(ctx, app.ID, in.Status, in.ReviewerID, now)
	})
	if err != nil {
		return nil, err
	}

	app.Status = in.Status
	app.ReviewedAt = &now
	app.ReviewedBy = &in.ReviewerID

	result := &Result{Application: app, Provider: provider}

	if in.Status == types.ApplicationStatusApproved && in.QuoteClientID != nil {
		quote, err := s.quote(ctx, *in.QuoteClientID, provider.HourlyRate)
		if err != nil {
			// the transition already committed; a failed quote is not worth a 500
			s.logger.WithError(err).Warn("failed to quote approved provider")
		}
		result.Quote = quote
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": app.ID,
		"status":         in.Status,
		"reviewed_by":    in.ReviewerID,
	}).Info("application reviewed")

	return result, nil
}

func (s *Service) approve(ctx context.Context, tx Store, app *types.Application, existing *types.ServiceProvider, in Input) (*types.ServiceProvider, error) {

	if in.HourlyRate != nil && !in.HourlyRate.IsPositive() {
		return nil, types.NewValidationError("hourlyRate", "must be positive")
	}

	services := in.Services
	if len(services) == 0 {
		services = app.DesiredServices
	}

	rate := in.HourlyRate
	if rate == nil {
		rate = app.DesiredHourlyRate
	}

	if existing == nil {
		if len(services) == 0 {
			return nil, types.NewValidationError("services", "at least one service is required to provision a provider")
		}
		if rate == nil || !rate.IsPositive() {
			return nil, types.NewValidationError("hourlyRate", "a positive hourly rate is required to provision a provider")
		}

		provider := &types.ServiceProvider{
			ApplicationID: &app.ID,
			Name:          app.FullName(),
			Services:      services,
			HourlyRate:    *rate,
			AssignedTo:    in.AssignedTo,
			Active:        true,
		}

		if err := tx.CreateProvider(ctx, provider); err != nil {
			return nil, err
		}
		return provider, nil
	}

	if len(in.Services) > 0 {
		existing.Services = in.Services
	}
	if in.HourlyRate != nil {
		existing.HourlyRate = *in.HourlyRate
	}
	if in.AssignedTo != nil {
		existing.AssignedTo = in.AssignedTo
	}
	existing.Active = true

	if err := tx.UpdateProvider(ctx, existing.ID, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) reject(ctx context.Context, tx Store, existing *types.ServiceProvider) (*types.ServiceProvider, error) {
	if existing == nil {
		return nil, nil
	}

	// deactivate, never delete: bills keep referencing the provider
	existing.Active = false
	if err := tx.UpdateProvider(ctx, existing.ID, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) quote(ctx context.Context, clientID string, hourlyRate decimal.Decimal) (*billing.Totals, error) {
	client, err := s.store.Company(ctx, clientID)
	if err != nil {
		return nil, err
	}

	markup, commission := billing.CompanyTerms(client)
	totals := billing.Calculate(decimal.NewFromInt(1), hourlyRate, markup, commission).Rounded()
	return &totals, nil
}
