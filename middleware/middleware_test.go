package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kustommania/logger"
	"kustommania/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.RequestIDKey))
	})

	w := serve(r, http.MethodGet, "/", nil)
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/", func(req *http.Request) { req.Header.Set("X-Request-ID", "abc") })
	assert.Equal(t, "abc", w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/silent", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.String(http.StatusBadGateway, "upstream")
	})

	w := serve(r, http.MethodGet, "/silent", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")

	w = serve(r, http.MethodGet, "/written", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "upstream", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(1, 2).Middleware(1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	fromIP := func(ip string) func(*http.Request) {
		return func(req *http.Request) { req.RemoteAddr = ip + ":1234" }
	}

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/", fromIP("10.0.0.1")).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/", fromIP("10.0.0.1")).Code)

	w := serve(r, http.MethodGet, "/", fromIP("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/", fromIP("10.0.0.2")).Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(10, 1)
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return start }

	rl.GetLimiter("a")
	rl.now = func() time.Time { return start.Add(9 * time.Minute) }
	rl.GetLimiter("b")

	rl.now = func() time.Time { return start.Add(15 * time.Minute) }
	rl.CleanupLimiters()
	assert.Equal(t, 1, rl.Len())
}

func TestValidateJSON(t *testing.T) {
	r := gin.New()
	r.Use(ValidateJSON())
	r.Any("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusUnsupportedMediaType, serve(r, http.MethodPost, "/", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/", func(req *http.Request) {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}).Code)
}

func TestSecurityHeadersAndNoIndex(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(), NoIndex())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "img-src 'self' data: https:")
	assert.Contains(t, w.Header().Get("Content-Security-Policy"),
		"form-action 'self' https://wa.me https://api.whatsapp.com https://web.whatsapp.com")
	assert.Equal(t, "noindex, nofollow", w.Header().Get("X-Robots-Tag"))
}

func TestAdminAuth(t *testing.T) {
	hash, err := services.HashPassword("secreto")
	require.NoError(t, err)
	auth := services.NewAuthService(hash, "test-secret", time.Hour)

	r := gin.New()
	admin := r.Group("/panel", AdminAuth(auth, "/panel/login"))
	admin.GET("", func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	admin.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login") })

	w := serve(r, http.MethodGet, "/panel", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/panel/login", w.Header().Get("Location"))

	w = serve(r, http.MethodGet, "/panel", func(req *http.Request) { req.Header.Set("Accept", "application/json") })
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/panel/login", nil).Code)

	token, err := auth.Login("secreto")
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/panel", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: services.AdminCookieName, Value: token})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "dashboard"))
}

func TestAdminAuth_OpenWhenDisabled(t *testing.T) {
	r := gin.New()
	r.GET("/panel", AdminAuth(services.NewAuthService("", "s", time.Hour), "/panel/login"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/panel", nil).Code)
}
