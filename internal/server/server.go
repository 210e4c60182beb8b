// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/bkeeper/hub/api"
	"github.com/bkeeper/hub/api/middleware"
	"github.com/bkeeper/hub/internal/advisor"
	"github.com/bkeeper/hub/internal/config"
	"github.com/bkeeper/hub/internal/database"
	"github.com/bkeeper/hub/internal/hubservice"
	"github.com/bkeeper/hub/internal/localstore"
	"github.com/bkeeper/hub/internal/monitoring"
	"github.com/bkeeper/hub/internal/repository/postgres"
	"github.com/bkeeper/hub/internal/session"
	"github.com/bkeeper/hub/internal/weather"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	local      *localstore.Store
	sessions   *session.Manager
	monitoring *monitoring.Service
	appDB      database.DB
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	s.appDB = initAppDB(s.config.Database.AppDB)
	s.hubservice = initializeHubService(s.appDB)
	s.monitoring = monitoring.NewService(monitoring.Config{
		PrometheusEndpoint: s.config.Monitoring.PrometheusEndpoint,
		LokiEndpoint:       s.config.Monitoring.LokiEndpoint,
	})

	local, err := localstore.Open(s.config.LocalStore.Path)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to open local store: %v", err)
	}
	s.local = local

	s.sessions = session.NewManager(s.config.Redis)
	if err := s.sessions.Ping(context.Background()); err != nil {
		nuts.L.Warnf("[Server] Redis unreachable, apiary selections will not persist: %v", err)
	}

	forecast := weather.NewClient(s.config.Weather)
	if s.config.Advisor.APIKey != "" {
		s.hubservice.SetAdvisor(advisor.NewClient(s.config.Advisor))
	}

	// Set up cleanup event handlers
	s.setupCleanupHandlers()

	// Router with CORS and request logging around it
	router := api.NewRouter(s.hubservice, s.local, s.sessions, forecast, middleware.KeycloakConfig{
		URL:          s.config.Keycloak.URL,
		Realm:        s.config.Keycloak.Realm,
		ClientID:     s.config.Keycloak.ClientID,
		ClientSecret: s.config.Keycloak.ClientSecret,
	})
	router.SetHealthCheck(s.handleHealth())

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	s.srv.Handler = handlers.CombinedLoggingHandler(os.Stdout, cors(router))

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.local.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing local store: %v", err)
	}
	if err := s.sessions.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing session manager: %v", err)
	}
	if err := s.appDB.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing database: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupCleanupHandlers() {
	// Handle hive deletion events
	s.hubservice.Cleanup.OnCleanup("hive.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Hive %s and all associated data deleted", id)
		s.monitoring.RecordEvent("hive_deletion", map[string]string{
			"hive_id": id,
		})
	})

	// Handle apiary deletion events
	s.hubservice.Cleanup.OnCleanup("apiary.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Apiary %s and all associated data deleted", id)
		s.monitoring.RecordEvent("apiary_deletion", map[string]string{
			"apiary_id": id,
		})
	})
}

// initializeHubService creates and configures the hub service
func initializeHubService(appDB database.DB) *hubservice.HubService {
	profiles := postgres.NewProfileRepository(appDB)
	apiaries := postgres.NewApiaryRepository(appDB)
	hives := postgres.NewHiveRepository(appDB)
	inspections := postgres.NewInspectionRepository(appDB)
	tasks := postgres.NewTaskRepository(appDB)
	harvests := postgres.NewHarvestRepository(appDB)
	sharing := postgres.NewSharingRepository(appDB)

	svc := hubservice.New(profiles, apiaries, hives, inspections, tasks, harvests, sharing)
	if err := svc.Validate(); err != nil {
		nuts.L.Fatalf("[Server] Invalid hub service wiring: %v", err)
	}
	return svc
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to AppDB: %v", err)
	}
	db := wrappedDB.GetDB()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping database: %v", err)
	}
	return wrappedDB
}
