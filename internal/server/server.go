package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"staffdesk/internal/invoice"
	"staffdesk/internal/review"
	"staffdesk/internal/storage"
	"staffdesk/internal/store"
	"staffdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	pool *pgxpool.Pool

	applicationsRepo *store.ApplicationRepository
	providersRepo    *store.ProviderRepository
	companiesRepo    *store.CompanyRepository
	billsRepo        *store.BillRepository
	jobsRepo         *store.JobRepository

	reviews   *review.Service
	documents *storage.DocumentStorage
	invoices  *invoice.Renderer

	cognitoClient *cognitoidentityprovider.Client
	cookie        *securecookie.SecureCookie
	validate      *validator.Validate

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	pool *pgxpool.Pool,
	stores *store.Stores,
	reviews *review.Service,
	documents *storage.DocumentStorage,
	invoices *invoice.Renderer,
	cognitoClient *cognitoidentityprovider.Client,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		pool:   pool,

		applicationsRepo: stores.Applications,
		providersRepo:    stores.Providers,
		companiesRepo:    stores.Companies,
		billsRepo:        stores.Bills,
		jobsRepo:         stores.Jobs,

		reviews:   reviews,
		documents: documents,
		invoices:  invoices,

		cognitoClient: cognitoClient,
		cookie:        securecookie.New(hashKey, blockKey),
		validate:      validator.New(validator.WithRequiredStructEnabled()),

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	// public intake + auth
	r.HandleFunc("/applications", s.handleSubmitApplication, http.MethodPost)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/applications", s.handleListApplications, http.MethodGet)
		r.HandleFunc("/applications/:applicationID", s.handleGetApplication, http.MethodGet)
		r.HandleFunc("/applications/:applicationID/license", s.handleGetApplicationLicense, http.MethodGet)
		r.HandleFunc("/applications/:applicationID/review", s.handleReviewApplication, http.MethodPost)

		r.HandleFunc("/providers", s.handleListProviders, http.MethodGet)
		r.HandleFunc("/providers/:providerID", s.handleGetProvider, http.MethodGet)
		r.HandleFunc("/providers/:providerID", s.handleUpdateProvider, http.MethodPut)

		r.HandleFunc("/companies", s.handleListCompanies, http.MethodGet)
		r.HandleFunc("/companies", s.handleCreateCompany, http.MethodPost)
		r.HandleFunc("/companies/:companyID", s.handleGetCompany, http.MethodGet)
		r.HandleFunc("/companies/:companyID", s.handleUpdateCompany, http.MethodPut)
		r.HandleFunc("/companies/:companyID", s.handleDeactivateCompany, http.MethodDelete)

		r.HandleFunc("/bills", s.handleListBills, http.MethodGet)
		r.HandleFunc("/bills", s.handleCreateBill, http.MethodPost)
		r.HandleFunc("/bills/:billID", s.handleGetBill, http.MethodGet)
		r.HandleFunc("/bills/:billID", s.handleUpdateBill, http.MethodPut)
		r.HandleFunc("/bills/:billID/pdf", s.handleGetBillPDF, http.MethodGet)

		r.HandleFunc("/jobs", s.handleListJobs, http.MethodGet)
		r.HandleFunc("/jobs/:jobID", s.handleGetJob, http.MethodGet)
		r.HandleFunc("/jobs/:jobID", s.handleUpdateJob, http.MethodPut)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.pool.Ping(ctx); err != nil {
		s.logger.WithError(err).Error("health check failed to ping database")
		s.respondJSON(w, http.StatusServiceUnavailable, apiResponse{Message: "database unavailable"})
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{Message: "ok"})
}

func (s *Service) reviewerFromContext(ctx context.Context) (string, error) {
	reviewerID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("reviewer id not found in context")
	}
	return reviewerID, nil
}
