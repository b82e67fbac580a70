package http

import "github.com/gin-gonic/gin"

// Register mounts every REST route on the router. Static segments
// never share a position with a path parameter; gin rejects that.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// Window lifecycle
	r.POST("/windows", h.CreateWindow)
	r.GET("/windows", h.ListWindows)
	r.GET("/windows/:id", h.GetWindow)
	r.POST("/windows/:id/minimize", h.MinimizeWindow)
	r.POST("/windows/:id/restore", h.RestoreWindow)
	r.POST("/windows/:id/maximize", h.ToggleMaximize)
	r.POST("/windows/:id/front", h.FocusWindow)
	r.POST("/windows/:id/drag", h.DragWindow)
	r.POST("/windows/:id/resize", h.ResizeWindow)
	r.DELETE("/windows/:id", h.CloseWindow)

	// Desktop
	r.POST("/desktop/minimize-all", h.MinimizeAll)
	r.GET("/desktop/viewport", h.GetViewport)
	r.POST("/desktop/viewport", h.SetViewport)
	r.GET("/desktop/taskbar", h.GetTaskbar)
	r.POST("/desktop/taskbar/:id/activate", h.ActivateTaskbarEntry)
	r.GET("/desktop/settings", h.GetSettings)

	// Application registry
	r.GET("/apps", h.ListApps)
	r.POST("/apps/:id/open", h.OpenApp)
	r.GET("/apps/:id/running", h.AppRunning)

	// App services
	r.POST("/services/calculator/eval", h.CalculatorEval)
	r.POST("/services/calculator/stats", h.CalculatorStats)
	r.POST("/services/docs/render", h.DocsRender)
	r.POST("/services/media/:id/enqueue", h.MediaEnqueue)
	r.POST("/services/media/:id/play", h.MediaPlay)
	r.POST("/services/media/:id/pause", h.MediaPause)
	r.POST("/services/media/:id/seek", h.MediaSeek)
	r.POST("/services/media/:id/next", h.MediaNext)
	r.GET("/services/media/:id", h.MediaState)

	// Cloud storage
	r.POST("/cloud/upload", h.CloudUpload)
	r.POST("/cloud/flush", h.CloudFlush)
	r.GET("/cloud/pending", h.CloudPending)
}
