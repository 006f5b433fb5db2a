package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffdesk/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Service{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func TestRespondErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: types.NewValidationError("services", "required"), wantStatus: http.StatusBadRequest},
		{name: "application not found", err: types.ErrApplicationNotFound, wantStatus: http.StatusNotFound},
		{name: "provider not found", err: types.ErrProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("fetch bill: %w", types.ErrBillNotFound), wantStatus: http.StatusNotFound},
		{name: "duplicate email", err: types.ErrDuplicateEmail, wantStatus: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	s := testService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.respondError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondErrorValidationFields(t *testing.T) {
	s := testService()
	rec := httptest.NewRecorder()

	s.respondError(rec, types.NewValidationError("hourlyRate", "must be positive"))

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "must be positive", body.Fields["hourlyRate"])
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst loginRequest

	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.co","password":"x","extra":true}`))
	err := decodeJSON(r, &dst)

	var verr *types.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDecodeJSON(t *testing.T) {
	var dst loginRequest

	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
	require.NoError(t, decodeJSON(r, &dst))

	assert.Equal(t, "a@b.co", dst.Email)
	assert.Equal(t, "x", dst.Password)
}

func TestCheckStruct(t *testing.T) {
	s := testService()

	err := s.checkStruct(loginRequest{Email: "not-an-email", Password: "x"})

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Email")

	assert.NoError(t, s.checkStruct(loginRequest{Email: "a@b.co", Password: "x"}))
}
