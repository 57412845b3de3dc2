package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ZapLogger logs one line per request. Server errors are logged at error,
// other /api/ requests at info and everything else at debug.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"clientIP", c.ClientIP(),
			"requestId", c.GetString(RequestIDKey),
		}
		if traceID := c.GetString(TraceIDKey); traceID != "" {
			fields = append(fields, "traceId", traceID)
		}
		if src := c.Writer.Header().Get("X-Data-Source"); src != "" {
			fields = append(fields, "source", src)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			sugar.Errorw("HTTP", fields...)
		case strings.HasPrefix(path, "/api/"):
			sugar.Infow("HTTP", fields...)
		default:
			sugar.Debugw("HTTP", fields...)
		}
	}
}
