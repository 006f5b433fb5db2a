package server

import (
	"net/http"

	"staffdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/shopspring/decimal"
)

func (s *Service) handleListJobs(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	jobs, err := s.jobsRepo.Jobs(r.Context(), activeOnly)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: jobs})
}

func (s *Service) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobsRepo.Job(r.Context(), flow.Param(r.Context(), "jobID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Data: job})
}

type updateJobRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	AverageHourlyRate *decimal.Decimal `json:"averageHourlyRate"`
	Active            *bool            `json:"active"`
}

func (s *Service) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := flow.Param(ctx, "jobID")

	var req updateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	if req.AverageHourlyRate != nil && !req.AverageHourlyRate.IsPositive() {
		s.respondError(w, types.NewValidationError("averageHourlyRate", "must be positive"))
		return
	}

	job, err := s.jobsRepo.Job(ctx, jobID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if req.Name != nil {
		job.Name = *req.Name
	}
	if req.Description != nil {
		job.Description = req.Description
	}
	if req.AverageHourlyRate != nil {
		job.AverageHourlyRate = *req.AverageHourlyRate
	}
	if req.Active != nil {
		job.Active = *req.Active
	}

	if err := s.jobsRepo.UpdateJob(ctx, jobID, job); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "job updated",
		Data:    job,
	})
}
