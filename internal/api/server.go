package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/usecase"
	"github.com/deskbot/whatsapp-desk/internal/service"
)

// Config contains the admin API settings
type Config struct {
	Addr        string
	AdminToken  string
	RateRPS     float64
	RateBurst   int
	CORSOrigins []string
}

// Server provides the administrative HTTP API
type Server struct {
	cfg      Config
	botSvc   *service.BotService
	tracker  *service.ConnectionTracker
	convUC   *usecase.ConversationUsecase
	configUC *usecase.ConfigUsecase
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	limiters *limiterPool

	server *http.Server
}

// NewServer creates a new API server
func NewServer(
	cfg Config,
	botSvc *service.BotService,
	tracker *service.ConnectionTracker,
	convUC *usecase.ConversationUsecase,
	configUC *usecase.ConfigUsecase,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		cfg:      cfg,
		botSvc:   botSvc,
		tracker:  tracker,
		convUC:   convUC,
		configUC: configUC,
		gatherer: gatherer,
		logger:   logger.Named("api"),
		limiters: &limiterPool{rps: cfg.RateRPS, burst: cfg.RateBurst},
	}
}

// Routes builds the HTTP handler
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         600,
		}))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(s.requireToken)

		// Bot session
		r.Get("/bot/status", s.handleStatus)
		r.Get("/bot/qr", s.handleQR)
		r.Post("/bot/logout", s.handleLogout)
		r.Get("/bot/config", s.handleGetConfig)
		r.Post("/bot/config", s.handleUpdateConfig)

		// Conversations
		r.Get("/conversations", s.handleListConversations)
		r.Delete("/conversations", s.handlePurgeConversations)
		r.Get("/conversations/{contactID}", s.handleGetConversation)
		r.Delete("/conversations/{contactID}", s.handleDeleteConversation)
		r.Post("/conversations/{contactID}/messages", s.handleSendMessage)

		// Message log
		r.Get("/messages", s.handleRecentMessages)
	})

	return r
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting HTTP server", zap.String("addr", s.cfg.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// ============ Helpers ============

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps domain errors to HTTP status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrConversationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidConfig), errors.Is(err, domain.ErrInvalidAddress):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotReady):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.writeStatus(w, status, err.Error())
}
