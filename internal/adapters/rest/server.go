package rest

import (
	core_port "briefing-service/internal/core/port"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// MetricsHandler отдается по /metrics, nil - маршрут не регистрируется
	MetricsHandler http.Handler
	// TokenVerifier nil - доверяем заголовкам X-User-ID/X-User-Role
	TokenVerifier TokenVerifier
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(cfg ServerConfig, handlers *BriefingHandler, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, handlers, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

// NewRouter собирает маршруты API.
func NewRouter(cfg ServerConfig, h *BriefingHandler, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-User-Role", "X-Trace-ID"},
			ExposedHeaders:   []string{"X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Use(NewAuthMiddleware(cfg.TokenVerifier))

		r.Post("/", h.OpenSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", h.CloseSession)
			r.Get("/view", h.GetView)
			r.Post("/reload", h.ReloadListings)
			r.Put("/filters", h.ApplyFilters)

			r.Put("/customer", h.SelectCustomer)
			r.Delete("/customer", h.ClearCustomer)

			r.Post("/sort/{family}", h.AdvanceSort)

			r.Put("/briefing/{listingID}", h.SetBriefingStatus)
			r.Post("/briefing/{listingID}/cycle", h.CycleBriefingStatus)
			r.Get("/briefing-list", h.GetBriefingList)
			r.Put("/overlay/{listingID}", h.EditBriefingField)

			r.Get("/clusters", h.GetClusters)
			r.Get("/events", h.Subscribe)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
