package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/api/http"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/api/middleware"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/api/ws"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/desktop"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/registry"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/session"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/window"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/config"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/logging"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/persistence"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/storage"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/tracing"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	sessions *session.Manager
	store    storage.Store
	codec    *persistence.Codec
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// New creates a server from cfg. Nothing listens until Run.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing WebDesk server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("storage", cfg.Storage.Driver),
	)

	// Each server owns its registry so several can live in one process
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetricsWith(reg)

	catalog, err := registry.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load app catalog: %w", err)
	}
	if _, _, err := registry.NewSeeder(catalog, cfg.Desktop.CatalogDir, logger.Logger).Seed(); err != nil {
		logger.Warn("Failed to seed app catalog", zap.Error(err))
	}

	store, err := storage.Open(storage.Config{
		Driver: cfg.Storage.Driver,
		Path:   cfg.Storage.Path,
		Quota:  cfg.Storage.Quota,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	codec, err := persistence.NewCodec(cfg.Storage.Compress)
	if err != nil {
		store.Close()
		return nil, err
	}

	sessions := session.NewManager(store, codec, session.Options{
		Desktop: desktop.Options{
			Window: window.Options{
				Viewport:      types.WindowSize{Width: cfg.Desktop.ViewportWidth, Height: cfg.Desktop.ViewportHeight},
				TaskbarHeight: cfg.Desktop.TaskbarHeight,
			},
			Catalog: catalog,
			Metrics: metrics,
			Logger:  logger.Logger,
		},
		Persistence: persistence.Options{
			Debounce:    cfg.Persistence.Debounce,
			AppDebounce: cfg.Persistence.AppDebounce,
		},
	}, logger.Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	tracer := tracing.New("webdesk", logger.Logger)

	router.Use(middleware.Recovery(logger.Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.RequestLogger(logger.Logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.OriginsCORSConfig(cfg.Server.AllowedOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := api.NewHandlers(sessions, metrics, logger.Logger)
	wsHandler := ws.NewHandler(sessions, metrics, logger.Logger, cfg.Server.AllowedOrigins)
	api.RegisterRoutes(router, handlers, wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/metrics/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	})

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
		sessions: sessions,
		store:    store,
		codec:    codec,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the open desktops
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// OpenDefault opens the configured default profile so the first client
// finds its desktop ready.
func (s *Server) OpenDefault(ctx context.Context) error {
	profile := s.config.Desktop.DefaultProfile
	if profile == "" {
		return nil
	}
	sess, _, err := s.sessions.Open(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to open default desktop: %w", err)
	}
	s.logger.Info("Default desktop ready",
		zap.String("profile", profile),
		zap.Bool("restored", sess.Restored),
	)
	return nil
}

// Run listens until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, flushes and closes every desktop and
// releases storage.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.sessions.CloseAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close sessions: %w", err))
	}
	s.codec.Close()
	s.tracer.Close()
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}

	if len(errs) > 0 {
		s.logger.Error("Shutdown finished with errors", zap.Error(errors.Join(errs...)))
	} else {
		s.logger.Info("Shutdown complete")
	}
	_ = s.logger.Sync()

	return errors.Join(errs...)
}
