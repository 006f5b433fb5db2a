package server

import (
	"fmt"
	"net/http"
	"time"

	"staffdesk/internal/billing"
	"staffdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/shopspring/decimal"
)

type createBillRequest struct {
	ClientID    string `json:"clientId" validate:"required"`
	ProviderID  string `json:"providerId" validate:"required"`
	Description string `json:"description" validate:"required"`

	HoursWorked decimal.Decimal `json:"hoursWorked"`
	ServiceRate decimal.Decimal `json:"serviceRate"`

	DueDate *time.Time `json:"dueDate"`
}

func (s *Service) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createBillRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.checkStruct(req); err != nil {
		s.respondError(w, err)
		return
	}
	if !req.HoursWorked.IsPositive() {
		s.respondError(w, types.NewValidationError("hoursWorked", "must be positive"))
		return
	}
	if !req.ServiceRate.IsPositive() {
		s.respondError(w, types.NewValidationError("serviceRate", "must be positive"))
		return
	}

	client, err := s.companiesRepo.Company(ctx, req.ClientID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if client.Type != types.CompanyTypeClient {
		s.respondError(w, types.NewValidationError("clientId", "company is not a client"))
		return
	}

	provider, err := s.providersRepo.Provider(ctx, req.ProviderID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if !provider.Active {
		s.respondError(w, types.NewValidationError("providerId", "provider is not active"))
		return
	}

	markup, commission := billing.CompanyTerms(client)
	totals := billing.Calculate(req.HoursWorked, req.ServiceRate, markup, commission).Rounded()

	bill := &types.Bill{
		ClientID:      client.ID,
		ProviderID:    provider.ID,
		Description:   req.Description,
		HoursWorked:   req.HoursWorked,
		ServiceRate:   req.ServiceRate,
		TotalClient:   totals.Client,
		TotalProvider: totals.Provider,
		Status:        types.BillStatusPending,
		DueDate:       req.DueDate,
	}

	if err := s.billsRepo.CreateBill(ctx, bill); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, apiResponse{
		Message: fmt.Sprintf("bill %s created", bill.BillNumber),
		Data:    bill,
	})
}

func (s *Service) handleListBills(w http.ResponseWriter, r *http.Request) {
	var clientID *string
	if v := r.URL.Query().Get("clientId"); v != "" {
		clientID = &v
	}

	var status *types.BillStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := types.BillStatus(v)
		switch st {
		case types.BillStatusPending, types.BillStatusPaid, types.BillStatusOverdue:
			status = &st
		default:
			s.respondError(w, types.NewValidationError("status", "must be Pending, Paid or Overdue"))
			return
		}
	}

	bills, err := s.billsRepo.Bills(r.Context(), clientID, status)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: bills})
}

func (s *Service) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.billsRepo.Bill(r.Context(), flow.Param(r.Context(), "billID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: bill})
}

type updateBillRequest struct {
	Description *string          `json:"description"`
	HoursWorked *decimal.Decimal `json:"hoursWorked"`
	ServiceRate *decimal.Decimal `json:"serviceRate"`
	Status      *string          `json:"status" validate:"omitempty,oneof=Pending Paid Overdue"`
	DueDate     *time.Time       `json:"dueDate"`
}

func (s *Service) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	billID := flow.Param(ctx, "billID")

	var req updateBillRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.checkStruct(req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.HoursWorked != nil && !req.HoursWorked.IsPositive() {
		s.respondError(w, types.NewValidationError("hoursWorked", "must be positive"))
		return
	}
	if req.ServiceRate != nil && !req.ServiceRate.IsPositive() {
		s.respondError(w, types.NewValidationError("serviceRate", "must be positive"))
		return
	}

	bill, err := s.billsRepo.Bill(ctx, billID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if req.Description != nil {
		bill.Description = *req.Description
	}
	if req.DueDate != nil {
		bill.DueDate = req.DueDate
	}

	// financial fields are recomputed whenever hours or rate change, with
	// the same calculator that priced the bill originally
	if req.HoursWorked != nil || req.ServiceRate != nil {
		if req.HoursWorked != nil {
			bill.HoursWorked = *req.HoursWorked
		}
		if req.ServiceRate != nil {
			bill.ServiceRate = *req.ServiceRate
		}

		client, err := s.companiesRepo.Company(ctx, bill.ClientID)
		if err != nil {
			s.respondError(w, err)
			return
		}

		markup, commission := billing.CompanyTerms(client)
		totals := billing.Calculate(bill.HoursWorked, bill.ServiceRate, markup, commission).Rounded()
		bill.TotalClient = totals.Client
		bill.TotalProvider = totals.Provider
	}

	if req.Status != nil {
		status := types.BillStatus(*req.Status)
		if status == types.BillStatusPaid && bill.Status != types.BillStatusPaid {
			now := time.Now()
			bill.PaidAt = &now
		}
		if status != types.BillStatusPaid {
			bill.PaidAt = nil
		}
		bill.Status = status
	}

	if err := s.billsRepo.UpdateBill(ctx, billID, bill); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: fmt.Sprintf("bill %s updated", bill.BillNumber),
		Data:    bill,
	})
}

// handleGetBillPDF renders the invoice from the stored totals. The PDF never
// reprices the engagement.
func (s *Service) handleGetBillPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bill, err := s.billsRepo.Bill(ctx, flow.Param(ctx, "billID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	client, err := s.companiesRepo.Company(ctx, bill.ClientID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	provider, err := s.providersRepo.Provider(ctx, bill.ProviderID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	data, err := s.invoices.Render(bill, client, provider)
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", bill.BillNumber+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.WithError(err).Error("failed to stream invoice pdf")
	}
}
