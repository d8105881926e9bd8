package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/docwell/editor-server/internal/pkg/jwt"
	pkgredis "github.com/docwell/editor-server/internal/pkg/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	v := jwt.NewVerifier("secret")
	r := gin.New()
	r.GET("/x", Auth(v), func(c *gin.Context) { c.String(http.StatusOK, CurrentUserID(c)) })

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer garbage").Code)

	token, err := v.Sign("user-1", "a@b.c", time.Minute)
	require.NoError(t, err)
	w := serve(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())

	other, err := jwt.NewVerifier("other").Sign("user-1", "", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer "+other).Code)
}

func TestAuthWithoutSecretRejects(t *testing.T) {
	r := gin.New()
	r.GET("/x", Auth(jwt.NewVerifier("")), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer anything").Code)
}

func TestOptionalAuth(t *testing.T) {
	v := jwt.NewVerifier("secret")
	r := gin.New()
	r.GET("/x", OptionalAuth(v), func(c *gin.Context) { c.String(http.StatusOK, CurrentUserID(c)) })

	w := serve(r, "Bearer bad")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	token, _ := v.Sign("user-2", "", time.Minute)
	assert.Equal(t, "user-2", serve(r, "bearer "+token).Body.String())
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := pkgredis.Wrap(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	r := gin.New()
	r.GET("/x", RateLimit(client, 3, time.Hour, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "").Code)
	}
	w := serve(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := pkgredis.Wrap(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	r := gin.New()
	r.GET("/x", RateLimit(client, 1, time.Minute, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	mr.Close()
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "").Code)
	}
}

func TestLoggerTagsRequests(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	w := serve(r, "")
	id := w.Header().Get(HeaderRequestID)
	assert.Len(t, id, 36)

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(HeaderRequestID, "client-id-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-id-1", w.Header().Get(HeaderRequestID))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusBadGateway), entries[1].ContextMap()["status"])
}
