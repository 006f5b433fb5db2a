package server

import (
	"net/http"

	"staffdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/shopspring/decimal"
)

func (s *Service) handleListProviders(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	providers, err := s.providersRepo.Providers(r.Context(), activeOnly)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: providers})
}

func (s *Service) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	provider, err := s.providersRepo.Provider(r.Context(), flow.Param(r.Context(), "providerID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: provider})
}

type updateProviderRequest struct {
	Services   []string         `json:"services" validate:"omitempty,dive,required"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
	AssignedTo *string          `json:"assignedTo"`
	Active     *bool            `json:"active"`
}

func (s *Service) handleUpdateProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID := flow.Param(ctx, "providerID")

	var req updateProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.checkStruct(req); err != nil {
		s.respondError(w, err)
		return
	}

	if req.HourlyRate != nil && !req.HourlyRate.IsPositive() {
		s.respondError(w, types.NewValidationError("hourlyRate", "must be positive"))
		return
	}

	provider, err := s.providersRepo.Provider(ctx, providerID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if len(req.Services) > 0 {
		provider.Services = req.Services
	}
	if req.HourlyRate != nil {
		provider.HourlyRate = *req.HourlyRate
	}
	if req.AssignedTo != nil {
		provider.AssignedTo = req.AssignedTo
	}
	if req.Active != nil {
		provider.Active = *req.Active
	}

	if err := s.providersRepo.UpdateProvider(ctx, providerID, provider); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "provider updated",
		Data:    provider,
	})
}
