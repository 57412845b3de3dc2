package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/tokens"
)

func newSessionRouter(cfg *config.Config, guarded bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Session(cfg))
	handlers := []gin.HandlerFunc{}
	if guarded {
		handlers = append(handlers, RequireSession())
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := tokens.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"uid": id.UserID})
	})
	r.GET("/me", handlers...)
	return r
}

func TestSession(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthCfg{JwtSecret: "test-secret"}}
	good, err := tokens.Issue(tokens.Identity{UserID: 4, Name: "Mike Johnson", Role: "team"}, "test-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		guarded bool
		header  string
		want    int
	}{
		{name: "anonymous passes open routes", header: "", want: http.StatusOK},
		{name: "anonymous is rejected on guarded routes", guarded: true, header: "", want: http.StatusUnauthorized},
		{name: "valid token", guarded: true, header: "Bearer " + good, want: http.StatusOK},
		{name: "bad token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newSessionRouter(cfg, tt.guarded).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestID_PropagatesCallerID(t *testing.T) {
	r := newSessionRouter(&config.Config{}, false)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
