package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceIDKey    = "trace_id"
	TraceIDHeader = "X-Trace-Id"
)

// OtelTracing traces API requests. Health, metrics and swagger are skipped.
func OtelTracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/api/")
	}))
}

// TraceID echoes the trace id to the caller and ties the span to the request id.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if sc := span.SpanContext(); sc.IsValid() {
			c.Header(TraceIDHeader, sc.TraceID().String())
			c.Set(TraceIDKey, sc.TraceID().String())
			if rid := c.GetString(RequestIDKey); rid != "" {
				span.SetAttributes(attribute.String("http.request_id", rid))
			}
		}
		c.Next()
	}
}
