package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mustafakart000/hospital-backend/internal/account"
	"github.com/mustafakart000/hospital-backend/internal/auth"
	"github.com/mustafakart000/hospital-backend/internal/catalog"
	"github.com/mustafakart000/hospital-backend/internal/reservation"
	"github.com/mustafakart000/hospital-backend/pkg/api"
	"github.com/mustafakart000/hospital-backend/pkg/config"
	"github.com/mustafakart000/hospital-backend/pkg/database"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/monitoring"
)

// Server wires the HTTP surface of the hospital backend
type Server struct {
	config     *config.Config
	logger     *logger.Logger
	db         *database.DB
	httpServer *http.Server
	metrics    *monitoring.MetricsCollector
	tracing    *monitoring.TracingManager
}

// New assembles the full application: storage, services, handlers and
// middleware. It seeds the speciality catalog and the bootstrap admin.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	var metrics *monitoring.MetricsCollector
	if cfg.Monitoring.Enabled {
		metrics = monitoring.NewMetricsCollector("hospital-backend")
	}

	var tracing *monitoring.TracingManager
	if cfg.Monitoring.TracingEnabled {
		tracing, err = monitoring.NewTracingManager(&monitoring.TracingConfig{
			ServiceName:    "hospital-backend",
			ServiceVersion: "1.0.0",
			JaegerEndpoint: cfg.Monitoring.JaegerEndpoint,
			Environment:    "production",
			SamplingRate:   cfg.Monitoring.SamplingRate,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	tokens, err := auth.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.ExpirationMs)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	accounts := account.NewRepository(db, log)
	catalogRepo := catalog.NewRepository(db, log)
	reservations := reservation.NewRepository(db, log)

	passwords := auth.NewPasswordManager()
	authService := auth.NewService(accounts, tokens, passwords, log, metrics)
	accountService := account.NewService(accounts, log)
	reservationService := reservation.NewService(reservations, accounts, catalogRepo, log, metrics)

	if err := catalogRepo.Seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed speciality catalog: %w", err)
	}
	if err := authService.EnsureAdmin(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure bootstrap admin: %w", err)
	}

	guard := auth.NewGuard(tokens, authService, log)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestLoggingMiddleware(log))
	if metrics != nil {
		router.Use(metrics.HTTPMiddleware)
	}
	if tracing != nil {
		router.Use(tracing.HTTPMiddleware)
	}

	auth.NewHandlers(authService, guard, log).RegisterRoutes(router)
	account.NewHandlers(accountService, accountService, guard, log).RegisterRoutes(router)
	catalog.NewHandlers(catalogRepo, guard).RegisterRoutes(router)
	reservation.NewHandlers(reservationService, guard, log).RegisterRoutes(router)

	srv := &Server{
		config:  cfg,
		logger:  log,
		db:      db,
		metrics: metrics,
		tracing: tracing,
	}

	router.HandleFunc(cfg.Monitoring.HealthPath, srv.healthHandler).Methods(http.MethodGet)
	if metrics != nil {
		router.Handle(cfg.Monitoring.MetricsPath, metrics.Handler()).Methods(http.MethodGet)
	}

	srv.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return srv, nil
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("Starting hospital backend")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and releases resources
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	if s.tracing != nil {
		if err := s.tracing.Shutdown(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to shut down tracing")
		}
	}
	return s.db.Close()
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := s.db.Health(); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
		s.logger.WithError(err).Error("Health check failed")
		if s.metrics != nil {
			s.metrics.RecordSystemError("database_unavailable", "health")
		}
	}
	if s.metrics != nil {
		s.metrics.RecordDBConnection(s.config.Database.Name, s.db.Stats().OpenConnections)
	}

	api.WriteJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLoggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			log.HTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, wrapper.status, time.Since(start).Milliseconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
