package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"staffdesk/pkg/types"

	"github.com/go-playground/validator/v10"
)

// apiResponse is the envelope returned on mutations: the updated entity plus
// a human-readable message.
type apiResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError translates the error taxonomy into status codes:
// validation -> 400, not found -> 404, conflict -> 409, everything else 500.
func (s *Service) respondError(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}

	if isNotFound(err) {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if errors.Is(err, types.ErrDuplicateEmail) {
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}

	s.logger.WithError(err).Error("request failed")
	s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func isNotFound(err error) bool {
	return errors.Is(err, types.ErrApplicationNotFound) ||
		errors.Is(err, types.ErrProviderNotFound) ||
		errors.Is(err, types.ErrCompanyNotFound) ||
		errors.Is(err, types.ErrBillNotFound) ||
		errors.Is(err, types.ErrJobNotFound)
}

// decodeJSON rejects unknown fields so arbitrary payloads can't leak through
// into storage.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return types.NewValidationError("body", "invalid request body: "+err.Error())
	}
	return nil
}

// checkStruct runs validator tags and converts failures into the
// ValidationError taxonomy.
func (s *Service) checkStruct(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = "failed " + fe.Tag() + " validation"
	}

	return &types.ValidationError{Fields: fields}
}
