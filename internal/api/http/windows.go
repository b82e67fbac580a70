package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createWindowRequest struct {
	Title   string                 `json:"title" binding:"required"`
	Width   int                    `json:"width"`
	Height  int                    `json:"height"`
	Content map[string]interface{} `json:"content"`
}

// CreateWindow opens a new window.
func (h *Handlers) CreateWindow(c *gin.Context) {
	var req createWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	win := h.windows.Create(req.Title, req.Content, req.Width, req.Height)
	c.JSON(http.StatusCreated, gin.H{"success": true, "window": win})
}

// ListWindows returns all windows in stacking order.
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"windows": h.windows.List(),
		"stats":   h.windows.Stats(),
	})
}

// GetWindow returns one window.
func (h *Handlers) GetWindow(c *gin.Context) {
	win, err := h.windows.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "window": win})
}

// MinimizeWindow hides a window into the taskbar.
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowOp(c, h.windows.Minimize)
}

// RestoreWindow brings a minimized window back.
func (h *Handlers) RestoreWindow(c *gin.Context) {
	h.windowOp(c, h.windows.Restore)
}

// ToggleMaximize flips a window between maximized and normal.
func (h *Handlers) ToggleMaximize(c *gin.Context) {
	h.windowOp(c, h.windows.ToggleMaximize)
}

// FocusWindow raises a window to the top of the stack.
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowOp(c, h.windows.BringToFront)
}

// CloseWindow destroys a window.
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowOp(c, h.windows.Close)
}

func (h *Handlers) windowOp(c *gin.Context, op func(string) error) {
	id := c.Param("id")
	if err := op(id); err != nil {
		h.fail(c, err)
		return
	}
	win, err := h.windows.Get(id)
	if err != nil {
		// The window was closed; report success without a body.
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "window": win})
}

type dragRequest struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// DragWindow moves a window by a pointer delta, clamped to keep the
// title bar reachable.
func (h *Handlers) DragWindow(c *gin.Context) {
	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	if err := h.windows.Drag(id, req.DX, req.DY); err != nil {
		h.fail(c, err)
		return
	}
	win, _ := h.windows.Get(id)
	c.JSON(http.StatusOK, gin.H{"success": true, "window": win})
}

type resizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// ResizeWindow changes a window's size within layout bounds.
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	if err := h.windows.Resize(id, req.Width, req.Height); err != nil {
		h.fail(c, err)
		return
	}
	win, _ := h.windows.Get(id)
	c.JSON(http.StatusOK, gin.H{"success": true, "window": win})
}

// MinimizeAll clears the desktop.
func (h *Handlers) MinimizeAll(c *gin.Context) {
	count := h.windows.MinimizeAll()
	c.JSON(http.StatusOK, gin.H{"success": true, "minimized": count})
}

type viewportRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// SetViewport updates the desktop dimensions and refits every window.
func (h *Handlers) SetViewport(c *gin.Context) {
	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.windows.SetViewport(req.Width, req.Height)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"viewport": h.windows.Viewport(),
		"windows":  h.windows.List(),
	})
}

// GetViewport returns the current desktop dimensions.
func (h *Handlers) GetViewport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "viewport": h.windows.Viewport()})
}
