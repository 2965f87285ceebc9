package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordOperation(context.Background(), "auth", "sign_in", "success")
	bm.RecordDuration(context.Background(), "auth", "resolve_capabilities", 25*time.Millisecond, "success")

	// Scrape the Prometheus endpoint and check the counter shows up.
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, req)

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_app_operations_total")
	assert.Contains(t, string(body), "test_app_operation_duration_seconds")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()

	// Must not panic
	bm.RecordOperation(context.Background(), "auth", "sign_in", "success")
	bm.RecordDuration(context.Background(), "auth", "sign_in", time.Second, "error")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
	router.GET("/v1/accounts/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/123", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Route pattern, not the raw path, must be used as the label.
	mw := httptest.NewRecorder()
	mreq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(mw, mreq)

	body := mw.Body.String()
	assert.Contains(t, body, "test_app_http_requests_total")
	assert.Contains(t, body, "/v1/accounts/:id")
	assert.NotContains(t, body, "/v1/accounts/123")
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "unknown", sanitizePath(""))
	assert.Equal(t, "/v1/roles", sanitizePath("/v1/roles"))
}
