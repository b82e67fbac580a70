// Package http exposes the desktop over a REST surface: window
// lifecycle operations, the application registry, the taskbar, and the
// bundled app services.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glasspane/webtop/internal/apps/calculator"
	"github.com/glasspane/webtop/internal/apps/docs"
	"github.com/glasspane/webtop/internal/apps/media"
	"github.com/glasspane/webtop/internal/domain/registry"
	"github.com/glasspane/webtop/internal/domain/settings"
	"github.com/glasspane/webtop/internal/domain/taskbar"
	"github.com/glasspane/webtop/internal/domain/wm"
	"github.com/glasspane/webtop/internal/infrastructure/logging"
	"github.com/glasspane/webtop/internal/infrastructure/monitoring"
	"github.com/glasspane/webtop/internal/providers/cloudstore"
)

// Handlers holds the desktop subsystems the REST surface drives.
type Handlers struct {
	windows    *wm.Manager
	registry   *registry.Registry
	taskbar    *taskbar.Bar
	settings   *settings.Settings
	calculator *calculator.Service
	docs       *docs.Service
	media      *media.Service
	cloud      *cloudstore.Client
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// Deps bundles handler dependencies.
type Deps struct {
	Windows    *wm.Manager
	Registry   *registry.Registry
	Taskbar    *taskbar.Bar
	Settings   *settings.Settings
	Calculator *calculator.Service
	Docs       *docs.Service
	Media      *media.Service
	Cloud      *cloudstore.Client
	Metrics    *monitoring.Metrics
	Logger     *logging.Logger
}

// NewHandlers creates the REST handler set.
func NewHandlers(deps Deps) *Handlers {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	return &Handlers{
		windows:    deps.Windows,
		registry:   deps.Registry,
		taskbar:    deps.Taskbar,
		settings:   deps.Settings,
		calculator: deps.Calculator,
		docs:       deps.Docs,
		media:      deps.Media,
		cloud:      deps.Cloud,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// Root identifies the service.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "webtop",
		"version": "1.0.0",
		"status":  "running",
	})
}

// Health reports service liveness.
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "healthy",
		"service": "webtop",
	}
	if h.metrics != nil {
		resp["uptime_seconds"] = h.metrics.Uptime().Seconds()
	}
	c.JSON(http.StatusOK, resp)
}

// fail maps domain errors onto HTTP status codes.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, wm.ErrWindowNotFound),
		errors.Is(err, registry.ErrNotRegistered),
		errors.Is(err, media.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, registry.ErrLaunchFailed):
		status = http.StatusBadGateway
	case errors.Is(err, wm.ErrWindowMaximized),
		errors.Is(err, wm.ErrWindowMinimized),
		errors.Is(err, media.ErrEmptyPlaylist),
		errors.Is(err, media.ErrSeekOutOfRange),
		errors.Is(err, calculator.ErrEmptyExpression),
		errors.Is(err, calculator.ErrEmptyDataset),
		errors.Is(err, docs.ErrEmptyDocument),
		errors.Is(err, docs.ErrDocumentTooLarge),
		errors.Is(err, cloudstore.ErrEmptyUpload):
		status = http.StatusBadRequest
	case errors.Is(err, cloudstore.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}
