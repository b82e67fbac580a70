package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glasspane/webtop/internal/apps/media"
)

type evalRequest struct {
	Expression string `json:"expression" binding:"required"`
}

// CalculatorEval evaluates an arithmetic expression.
func (h *Handlers) CalculatorEval(c *gin.Context) {
	var req evalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.calculator.Eval(c.Request.Context(), req.Expression)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

type statsRequest struct {
	Numbers []float64 `json:"numbers" binding:"required"`
}

// CalculatorStats computes descriptive statistics for a number list.
func (h *Handlers) CalculatorStats(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	summary, err := h.calculator.Stats(req.Numbers)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": summary})
}

type renderRequest struct {
	Document string `json:"document" binding:"required"`
}

// DocsRender sanitizes and extracts a document for display.
func (h *Handlers) DocsRender(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.docs.Render([]byte(req.Document))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "page": page})
}

type enqueueRequest struct {
	Tracks []media.Track `json:"tracks" binding:"required"`
}

// MediaEnqueue appends tracks to a player's playlist.
func (h *Handlers) MediaEnqueue(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.mediaOp(c, func(windowID string) (*media.State, error) {
		return h.media.Enqueue(windowID, req.Tracks...)
	})
}

// MediaPlay starts or resumes playback.
func (h *Handlers) MediaPlay(c *gin.Context) {
	h.mediaOp(c, h.media.Play)
}

// MediaPause suspends playback.
func (h *Handlers) MediaPause(c *gin.Context) {
	h.mediaOp(c, h.media.Pause)
}

type seekRequest struct {
	Position int `json:"position"`
}

// MediaSeek moves the playback position.
func (h *Handlers) MediaSeek(c *gin.Context) {
	var req seekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.mediaOp(c, func(windowID string) (*media.State, error) {
		return h.media.Seek(windowID, req.Position)
	})
}

// MediaNext advances to the following track.
func (h *Handlers) MediaNext(c *gin.Context) {
	h.mediaOp(c, h.media.Next)
}

// MediaState returns a player snapshot.
func (h *Handlers) MediaState(c *gin.Context) {
	h.mediaOp(c, h.media.State)
}

func (h *Handlers) mediaOp(c *gin.Context, op func(string) (*media.State, error)) {
	state, err := op(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "player": state})
}

type uploadRequest struct {
	Name string `json:"name" binding:"required"`
	Data string `json:"data" binding:"required"`
}

// CloudUpload stores a file remotely; failures stay queued for flush.
func (h *Handlers) CloudUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	up, err := h.cloud.Store(c.Request.Context(), req.Name, []byte(req.Data))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "upload": up})
}

// CloudFlush retries every pending upload.
func (h *Handlers) CloudFlush(c *gin.Context) {
	delivered, err := h.cloud.Flush(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"delivered": delivered,
		"pending":   h.cloud.Pending(),
	})
}

// CloudPending lists uploads waiting for retry.
func (h *Handlers) CloudPending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "pending": h.cloud.Pending()})
}
