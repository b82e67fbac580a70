package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/glasspane/webtop/internal/infrastructure/config"
)

func newRouter(limit config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(nil))
	r.Use(RateLimit(limit))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func get(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)
	return w
}

func TestCORSHeaders(t *testing.T) {
	router := newRouter(config.RateLimitConfig{Enabled: false})

	w := get(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitRejectsBursts(t *testing.T) {
	router := newRouter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             2,
	})

	assert.Equal(t, http.StatusOK, get(router).Code)
	assert.Equal(t, http.StatusOK, get(router).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	router := newRouter(config.RateLimitConfig{Enabled: false})

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, get(router).Code)
	}
}
