package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"staffdesk/internal/review"
	"staffdesk/internal/utils"
	"staffdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/shopspring/decimal"
)

const maxIntakeFormSize = 10 << 20 // license scans

// applicationIntakeForm is the public submission payload. Decoded from
// multipart form data so the license document can ride along.
type applicationIntakeForm struct {
	FirstName   string `form:"first_name" validate:"required"`
	LastName    string `form:"last_name" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Phone       string `form:"phone" validate:"required"`
	SSN         string `form:"ssn" validate:"required"`
	DateOfBirth string `form:"date_of_birth" validate:"required,datetime=2006-01-02"`

	EnglishLevel      int  `form:"english_level" validate:"min=0,max=100"`
	HasDriversLicense bool `form:"has_drivers_license"`

	DesiredServices   []string `form:"desired_services" validate:"required,min=1,dive,required"`
	DesiredHourlyRate string   `form:"desired_hourly_rate"`

	Street  string `form:"street" validate:"required"`
	City    string `form:"city"`
	State   string `form:"state"`
	ZipCode string `form:"zip_code"`

	EmergencyContactName  string `form:"emergency_contact_name"`
	EmergencyContactPhone string `form:"emergency_contact_phone"`
	ReferralSource        string `form:"referral_source"`
}

func (s *Service) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxIntakeFormSize); err != nil {
		s.respondError(w, types.NewValidationError("body", "invalid multipart form payload"))
		return
	}

	var intake = new(applicationIntakeForm)
	if err := decoder.Decode(intake, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode intake form")
		s.respondError(w, types.NewValidationError("body", "malformed form fields"))
		return
	}

	if err := s.checkStruct(intake); err != nil {
		s.respondError(w, err)
		return
	}

	dob, err := time.Parse("2006-01-02", intake.DateOfBirth)
	if err != nil {
		s.respondError(w, types.NewValidationError("date_of_birth", "must be YYYY-MM-DD"))
		return
	}

	var desiredRate *decimal.Decimal
	if intake.DesiredHourlyRate != "" {
		rate, err := decimal.NewFromString(intake.DesiredHourlyRate)
		if err != nil || !rate.IsPositive() {
			s.respondError(w, types.NewValidationError("desired_hourly_rate", "must be a positive decimal"))
			return
		}
		desiredRate = &rate
	}

	app := &types.Application{
		FirstName:         intake.FirstName,
		LastName:          intake.LastName,
		Email:             intake.Email,
		Phone:             intake.Phone,
		SSN:               intake.SSN,
		DateOfBirth:       dob,
		EnglishLevel:      intake.EnglishLevel,
		HasDriversLicense: intake.HasDriversLicense,
		DesiredServices:   intake.DesiredServices,
		DesiredHourlyRate: desiredRate,
		Address: types.Address{
			Street:  intake.Street,
			City:    optional(intake.City),
			State:   optional(intake.State),
			ZipCode: optional(intake.ZipCode),
		},
		EmergencyContactName:  optional(intake.EmergencyContactName),
		EmergencyContactPhone: optional(intake.EmergencyContactPhone),
		ReferralSource:        optional(intake.ReferralSource),
	}

	file, header, err := formFile(r, "license_document")
	if err != nil {
		s.respondError(w, err)
		return
	}
	if file != nil {
		defer file.Close()

		key, err := s.documents.UploadLicense(ctx, header.Filename, file, header.Header.Get("Content-Type"))
		if err != nil {
			s.logger.WithError(err).Error("failed to store license document")
			s.respondError(w, err)
			return
		}
		app.LicenseDocumentKey = &key
	}

	if err := s.applicationsRepo.CreateApplication(ctx, app); err != nil {
		if app.LicenseDocumentKey != nil {
			if derr := s.documents.Delete(ctx, *app.LicenseDocumentKey); derr != nil {
				s.logger.WithError(derr).Warn("failed to remove orphaned license document")
			}
		}
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, apiResponse{
		Message: "application submitted",
		Data:    app,
	})
}

func (s *Service) handleListApplications(w http.ResponseWriter, r *http.Request) {
	var status *types.ApplicationStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := types.ApplicationStatus(v)
		switch st {
		case types.ApplicationStatusPending, types.ApplicationStatusApproved, types.ApplicationStatusRejected:
			status = &st
		default:
			s.respondError(w, types.NewValidationError("status", "must be pending, approved or rejected"))
			return
		}
	}

	apps, err := s.applicationsRepo.Applications(r.Context(), status)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: apps})
}

func (s *Service) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.applicationsRepo.Application(r.Context(), flow.Param(r.Context(), "applicationID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: app})
}

func (s *Service) handleGetApplicationLicense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := s.applicationsRepo.Application(ctx, flow.Param(ctx, "applicationID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	if app.LicenseDocumentKey == nil {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "application has no license document"})
		return
	}

	body, contentType, err := s.documents.Fetch(ctx, *app.LicenseDocumentKey)
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		s.logger.WithError(err).Error("failed to stream license document")
	}
}

type reviewApplicationRequest struct {
	Status        string           `json:"status" validate:"required,oneof=approved rejected"`
	Services      []string         `json:"services" validate:"omitempty,dive,required"`
	HourlyRate    *decimal.Decimal `json:"hourlyRate"`
	AssignedTo    *string          `json:"assignedTo"`
	QuoteClientID *string          `json:"quoteClientId"`
}

func (s *Service) handleReviewApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviewerID, err := s.reviewerFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain reviewer")
		s.unauthorized(w)
		return
	}

	var req reviewApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.checkStruct(req); err != nil {
		s.respondError(w, err)
		return
	}

	result, err := s.reviews.Review(ctx, review.Input{
		ApplicationID: flow.Param(ctx, "applicationID"),
		Status:        types.ApplicationStatus(req.Status),
		ReviewerID:    reviewerID,
		Services:      req.Services,
		HourlyRate:    req.HourlyRate,
		AssignedTo:    req.AssignedTo,
		QuoteClientID: req.QuoteClientID,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "application " + req.Status,
		Data:    result,
	})
}

// formFile treats an absent upload as nil; any other multipart failure is a
// validation error on the field.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, types.NewValidationError(field, "malformed file upload")
	}
	return file, header, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return utils.StringPtr(s)
}
