package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glasspane/webtop/internal/domain/registry"
)

// ListApps returns every registered application.
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"apps":    h.registry.List(),
		"stats":   h.registry.Stats(),
	})
}

// OpenApp launches an application, or refocuses the live instance of a
// single-instance app.
func (h *Handlers) OpenApp(c *gin.Context) {
	win, refocused, err := h.registry.Open(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusCreated
	if refocused {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"success":   true,
		"window":    win,
		"refocused": refocused,
	})
}

// AppRunning reports whether a single-instance app has a live window.
func (h *Handlers) AppRunning(c *gin.Context) {
	appID := c.Param("id")
	if _, ok := h.registry.Get(appID); !ok {
		h.fail(c, fmt.Errorf("%w: %s", registry.ErrNotRegistered, appID))
		return
	}
	windowID, running := h.registry.RunningInstance(appID)
	resp := gin.H{"success": true, "running": running}
	if running {
		resp["window_id"] = windowID
	}
	c.JSON(http.StatusOK, resp)
}

// GetTaskbar returns the minimized-window affordances in minimize order.
func (h *Handlers) GetTaskbar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "entries": h.taskbar.List()})
}

// ActivateTaskbarEntry restores the window behind a taskbar affordance.
func (h *Handlers) ActivateTaskbarEntry(c *gin.Context) {
	h.windowOp(c, h.windows.Restore)
}

// GetSettings returns the desktop settings.
func (h *Handlers) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": h.settings})
}
