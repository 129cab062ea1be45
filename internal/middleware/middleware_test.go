package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

var verifier = util.NewTokenVerifier(config.JWTConfig{Secret: secret, LeewaySeconds: 5})

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/instructor",
		AuthMiddleware(verifier),
		RoleMiddleware(model.Instructor),
		func(c *gin.Context) {
			c.String(http.StatusOK, "%d", util.GetUserFromContext(c).UserID)
		},
	)
	return r
}

func bearerTTL(t *testing.T, role model.UserRole, key string, ttl time.Duration) string {
	t.Helper()
	u := &model.User{Role: role, Email: "u@example.com"}
	u.ID = 7
	tok, err := util.NewTokenVerifier(config.JWTConfig{Secret: key}).IssueToken(u, ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

func bearer(t *testing.T, role model.UserRole, key string) string {
	return bearerTTL(t, role, key, time.Hour)
}

func TestAuthAndRole(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    int
		message string
	}{
		{"missing token", "", http.StatusUnauthorized, "Missing bearer token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "Missing bearer token"},
		{"wrong signature", bearer(t, model.Instructor, "other-secret"), http.StatusUnauthorized, "Invalid token"},
		{"expired", bearerTTL(t, model.Instructor, secret, -time.Hour), http.StatusUnauthorized, "Token expired"},
		{"student forbidden", bearer(t, model.Student, secret), http.StatusForbidden, "Forbidden"},
		{"instructor allowed", bearer(t, model.Instructor, secret), http.StatusOK, ""},
		{"lowercase scheme", "bearer " + strings.TrimPrefix(bearer(t, model.Instructor, secret), "Bearer "), http.StatusOK, ""},
		{"admin allowed", bearer(t, model.Admin, secret), http.StatusOK, ""},
	}

	r := protectedRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/instructor", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "7", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), tt.message)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/instructor", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/instructor", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestRequestID_PropagatesToContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, "%s", logger.RequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "trace-me")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-me", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}
