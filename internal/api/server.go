package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/inovuslabs/certanchor/internal/api/handler"
	mw "github.com/inovuslabs/certanchor/internal/api/middleware"
	"github.com/inovuslabs/certanchor/internal/config"
	"github.com/inovuslabs/certanchor/internal/core"
	"github.com/inovuslabs/certanchor/internal/ledger"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	contract *ledger.ContractClient
	signer   handler.UploadSigner
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, contract *ledger.ContractClient, explorer *ledger.Explorer, signer handler.UploadSigner, cfg *config.Config) *Server {
	services := core.NewServices(pool, contract, explorer, logger)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		pool:     pool,
		contract: contract,
		signer:   signer,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	verification := handler.NewVerification(s.services.Verification)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Verification is public: anyone holding a certificate must be
		// able to check it without credentials.
		r.Get("/verify/{hash}", verification.VerifyHash)
		r.Get("/search", verification.Search)
		r.Get("/transactions/{txHash}", verification.Transaction)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(s.pool))

			cert := handler.NewCertificate(s.services.Certificate, s.services.Revocation)
			r.Post("/certificates", cert.Issue)
			r.Post("/certificates/revoke", cert.Revoke)
			r.Get("/certificates/{id}", verification.Get)

			manager := handler.NewManager(s.services.Manager)
			r.Post("/managers", manager.Grant)
			r.Delete("/managers/{userID}", manager.Revoke)

			audit := handler.NewAudit(s.services.Audit)
			r.Get("/audit-logs", audit.List)

			media := handler.NewMedia(s.signer)
			r.Post("/media/upload-url", media.UploadURL)

			dashboard := handler.NewDashboard(s.services.Dashboard)
			r.Get("/dashboard/stats", dashboard.Stats)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	if err := s.contract.Ping(ctx); err != nil {
		checks["ledger"] = err.Error()
		healthy = false
	} else {
		checks["ledger"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
