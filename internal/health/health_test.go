package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serveHealth(t *testing.T, checker *HealthChecker) (int, HealthResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	checker.Handler(c)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthChecker_Healthy(t *testing.T) {
	checker := NewHealthChecker(pingFunc(func(ctx context.Context) error { return nil }), time.Second)

	code, response := serveHealth(t, checker)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "ok", response.Database)
}

func TestHealthChecker_DatabaseDown(t *testing.T) {
	checker := NewHealthChecker(pingFunc(func(ctx context.Context) error {
		return errors.New("connection refused")
	}), time.Second)

	code, response := serveHealth(t, checker)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "connection refused", response.Error)
}

func TestHealthChecker_Timeout(t *testing.T) {
	checker := NewHealthChecker(pingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}), 10*time.Millisecond)

	code, response := serveHealth(t, checker)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, response.Error, "deadline exceeded")
}
