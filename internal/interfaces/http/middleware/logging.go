package middleware

import (
	"github.com/gin-gonic/gin"

	"coachdesk/internal/shared/logger"
)

// Logger emits one structured log line per request. Health probes are kept
// out of the log entirely; the scheduler and load balancer hit that route
// often enough to drown everything else at debug level.
func Logger(log logger.Interface) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		if param.Path == "/health" && param.StatusCode < 400 {
			return ""
		}

		args := []any{
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency", param.Latency,
			"client_ip", param.ClientIP,
		}

		if param.ErrorMessage != "" {
			args = append(args, "error", param.ErrorMessage)
		}

		switch {
		case param.StatusCode >= 500:
			log.Errorw("request failed", args...)
		case param.StatusCode >= 400:
			log.Warnw("request rejected", args...)
		default:
			log.Debugw("request served", args...)
		}

		return ""
	})
}
