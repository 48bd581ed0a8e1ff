package apiHttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/metrics"
	"github.com/firstlight/backend/internal/service"
	"github.com/firstlight/backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Env: "local"}
	cfg.HttpServer.MetricsEnabled = true
	cfg.HttpServer.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Limiter = config.Limiter{RPS: 100, Burst: 100, TTL: time.Minute}

	tokens, err := auth.NewManager(config.JWTConfig{SigningKey: "test-key", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	otpMetrics := metrics.NewOtp(reg)
	otpMetrics.Issued.WithLabelValues("email_verification").Inc()

	return NewHandlers(&service.Services{}, tokens, cfg, reg).Init(cfg)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `firstlight_otp_issued_total{purpose="email_verification"} 1`))
}

func TestCorsAllowedOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
