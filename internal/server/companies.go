package server

import (
	"net/http"

	"staffdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/shopspring/decimal"
)

type companyRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=client supplier"`
	LegalEntity string `json:"legalEntity" validate:"required,oneof=Corporation LLC Partnership"`

	Street  string  `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`

	MarkupKind    *string          `json:"markupKind" validate:"omitempty,oneof=Percent Dollar"`
	MarkupValue   *decimal.Decimal `json:"markupValue"`
	CommissionPct *decimal.Decimal `json:"commissionPct"`

	AssignedTo *string `json:"assignedTo"`
	Active     *bool   `json:"active"`
	Notes      *string `json:"notes"`
}

// checkBillingTerms enforces the company invariants: a markup kind requires a
// non-negative value, commission is a percentage in [0,100].
func checkBillingTerms(req *companyRequest) error {
	if req.MarkupKind != nil {
		if req.MarkupValue == nil {
			return types.NewValidationError("markupValue", "required when markupKind is set")
		}
		if req.MarkupValue.IsNegative() {
			return types.NewValidationError("markupValue", "must not be negative")
		}
	}
	if req.MarkupValue != nil && req.MarkupKind == nil {
		return types.NewValidationError("markupKind", "required when markupValue is set")
	}

	if req.CommissionPct != nil {
		if req.CommissionPct.IsNegative() || req.CommissionPct.GreaterThan(decimal.NewFromInt(100)) {
			return types.NewValidationError("commissionPct", "must be between 0 and 100")
		}
	}

	return nil
}

func (req *companyRequest) apply(company *types.Company) {
	company.Name = req.Name
	company.Type = types.CompanyType(req.Type)
	company.LegalEntity = types.LegalEntityType(req.LegalEntity)
	company.Address = types.Address{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
	}

	company.MarkupKind = nil
	if req.MarkupKind != nil {
		kind := types.MarkupKind(*req.MarkupKind)
		company.MarkupKind = &kind
	}
	company.MarkupValue = req.MarkupValue
	company.CommissionPct = req.CommissionPct

	company.AssignedTo = req.AssignedTo
	company.Notes = req.Notes

	company.Active = true
	if req.Active != nil {
		company.Active = *req.Active
	}
}

func (s *Service) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.checkStruct(req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := checkBillingTerms(&req); err != nil {
		s.respondError(w, err)
		return
	}

	var company = new(types.Company)
	req.apply(company)

	if err := s.companiesRepo.CreateCompany(r.Context(), company); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, apiResponse{
		Message: "company created",
		Data:    company,
	})
}

func (s *Service) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	var companyType *types.CompanyType
	if v := r.URL.Query().Get("type"); v != "" {
		ct := types.CompanyType(v)
		switch ct {
		case types.CompanyTypeClient, types.CompanyTypeSupplier:
			companyType = &ct
		default:
			s.respondError(w, types.NewValidationError("type", "must be client or supplier"))
			return
		}
	}

	companies, err := s.companiesRepo.Companies(r.Context(), companyType)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: companies})
}

func (s *Service) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.companiesRepo.Company(r.Context(), flow.Param(r.Context(), "companyID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: company})
}

func (s *Service) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := flow.Param(ctx, "companyID")

	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.checkStruct(req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := checkBillingTerms(&req); err != nil {
		s.respondError(w, err)
		return
	}

	company, err := s.companiesRepo.Company(ctx, companyID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	req.apply(company)

	if err := s.companiesRepo.UpdateCompany(ctx, companyID, company); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "company updated",
		Data:    company,
	})
}

func (s *Service) handleDeactivateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.companiesRepo.DeactivateCompany(ctx, flow.Param(ctx, "companyID")); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Message: "company deactivated"})
}
