package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/nijaru/yt-summary/config"
	"github.com/nijaru/yt-summary/middleware"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/summary"
	"github.com/nijaru/yt-summary/services/video"
	"github.com/nijaru/yt-summary/utils"
	"github.com/sirupsen/logrus"
)

type Server struct {
	video   *VideoHandler
	summary *SummaryHandler
	config  *config.Config
	logger  *logrus.Logger
	server  *http.Server
}

type ServerOption func(*Server)

// NewServer creates a new API server with the provided services and options
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		config: cfg,
		logger: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// WithServices sets up the handlers with the provided services
func WithServices(videoSvc video.Service, summarySvc summary.Service) ServerOption {
	return func(s *Server) {
		s.video = NewVideoHandler(videoSvc, s.config.Server.RequestTimeout)
		s.summary = NewSummaryHandler(summarySvc, s.config.Server.RequestTimeout)
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.WithField("port", s.config.Server.Port).Info("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"},
			AllowedHeaders: []string{
				"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version", "Content-Length",
				"Content-MD5", "Content-Type", "Date", "X-Api-Version", "X-Request-ID",
			},
			ExposedHeaders:     []string{"X-Request-ID"},
			OptionsPassthrough: true,
		}),
		middleware.Preflight,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.HandleError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.HandleError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		if s.video != nil {
			r.Post("/transcript", s.video.HandleTranscript)
		}
		if s.summary != nil {
			r.Post("/summarize", s.summary.HandleSummarize)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, &models.HealthResponse{Status: "ok"})
}
