package health

import (
	"context"
	"net/http"
	"time"

	"crm-dedupe/internal/logger"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Pinger is satisfied by *db.Database.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthChecker struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthChecker(db Pinger, timeout time.Duration) *HealthChecker {
	return &HealthChecker{db: db, timeout: timeout}
}

// Handler reports 200 when the database answers a ping within the timeout,
// 503 otherwise.
func (h *HealthChecker) Handler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		logger.Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "unreachable",
			Error:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
