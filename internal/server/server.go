package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/glasspane/webtop/internal/api/http"
	"github.com/glasspane/webtop/internal/api/middleware"
	"github.com/glasspane/webtop/internal/api/ws"
	"github.com/glasspane/webtop/internal/apps/calculator"
	"github.com/glasspane/webtop/internal/apps/docs"
	"github.com/glasspane/webtop/internal/apps/media"
	"github.com/glasspane/webtop/internal/domain/registry"
	"github.com/glasspane/webtop/internal/domain/settings"
	"github.com/glasspane/webtop/internal/domain/taskbar"
	"github.com/glasspane/webtop/internal/domain/wm"
	"github.com/glasspane/webtop/internal/infrastructure/config"
	"github.com/glasspane/webtop/internal/infrastructure/logging"
	"github.com/glasspane/webtop/internal/infrastructure/monitoring"
	"github.com/glasspane/webtop/internal/providers/cloudstore"
	"github.com/glasspane/webtop/internal/shared/types"
)

// Server wires the desktop subsystems behind the HTTP surface.
type Server struct {
	router   *gin.Engine
	windows  *wm.Manager
	registry *registry.Registry
	hub      *ws.Hub
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// New builds a fully wired server from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing desktop service",
		zap.String("port", cfg.Server.Port),
		zap.Int("viewport_width", cfg.Desktop.ViewportWidth),
		zap.Int("viewport_height", cfg.Desktop.ViewportHeight),
	)

	metrics := monitoring.NewMetrics()

	desktopSettings, err := settings.Load(cfg.Desktop.SettingsPath)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger, metrics)
	bar := taskbar.New()

	viewport := types.Viewport{
		Width:  cfg.Desktop.ViewportWidth,
		Height: cfg.Desktop.ViewportHeight,
	}
	windows := wm.NewManager(viewport, desktopSettings.WindowConfig()).
		WithTaskbar(bar).
		WithEmitter(hub).
		WithMetrics(metrics)

	reg := registry.New(windows, logger).
		WithEmitter(hub).
		WithMetrics(metrics)

	// Built-in applications.
	calcSvc := calculator.NewService()
	docsSvc := docs.NewService()
	mediaSvc := media.NewService(windows)
	if err := calculator.Register(reg, windows); err != nil {
		return nil, err
	}
	if err := docs.Register(reg, windows); err != nil {
		return nil, err
	}
	if err := mediaSvc.Register(reg, windows); err != nil {
		return nil, err
	}

	// Manifest-seeded applications.
	seeder := registry.NewSeeder(reg, windows, cfg.Desktop.AppsDir, logger)
	if loaded, err := seeder.Seed(); err != nil {
		logger.Warn("App seeding failed", zap.Error(err))
	} else if loaded > 0 {
		logger.Info("Seeded apps from manifests", zap.Int("count", loaded))
	}

	cloud := cloudstore.New(cloudstore.Config{
		Endpoint: cfg.Cloud.Endpoint,
		APIKey:   cfg.Cloud.APIKey,
	}, logger, metrics)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(nil))
	router.Use(middleware.RateLimit(cfg.RateLimit))
	router.Use(monitoring.Middleware(metrics))

	handlers := apihttp.NewHandlers(apihttp.Deps{
		Windows:    windows,
		Registry:   reg,
		Taskbar:    bar,
		Settings:   desktopSettings,
		Calculator: calcSvc,
		Docs:       docsSvc,
		Media:      mediaSvc,
		Cloud:      cloud,
		Metrics:    metrics,
		Logger:     logger,
	})
	handlers.Register(router)

	router.GET("/stream", hub.HandleConnection)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized")

	return &Server{
		router:   router,
		windows:  windows,
		registry: reg,
		hub:      hub,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Router exposes the gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close flushes buffered log entries.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server")
	_ = s.logger.Sync()
	return nil
}
