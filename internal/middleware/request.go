// ejournal/internal/middleware/request.go

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ejournal/internal/metrics"
	"ejournal/internal/observability"
)

// RequestLog tags every request with an ID, logs it and feeds the Prometheus
// counters. Replaces gin's default logger.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.Observe(elapsed.Seconds())
		if status >= http.StatusInternalServerError {
			metrics.HandlerErrors.Inc()
		}

		slog.Info("request",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", elapsed,
		)
	}
}

// Recovery converts a panic into a 500 with the standard message body and
// reports it to Sentry when configured.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in handler", "panic", r, "path", c.Request.URL.Path)
				if err, ok := r.(error); ok {
					observability.CaptureErr(err)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Внутренняя ошибка сервера"})
			}
		}()
		c.Next()
	}
}
