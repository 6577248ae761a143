//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/jwt"
	"shareit/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityRouter(tokens *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", middleware.NewIdentityMiddleware(tokens).RequireUser(), func(c *gin.Context) {
		id, ok := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	return r
}

func TestIdentityMiddleware(t *testing.T) {
	tokens := jwt.NewService("test-secret", time.Hour)
	r := newIdentityRouter(tokens)

	t.Run("header identity", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/whoami", nil, 42)
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
		assert.JSONEq(t, `{"id": 42, "ok": true}`, rec.Body.String())
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		for _, raw := range []string{"abc", "0", "-3", "1.5"} {
			rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/whoami", nil,
				map[string]string{middleware.HeaderSharerUserID: raw})
			httptest.AssertErrorCode(t, rec, http.StatusBadRequest, httperr.CodeBadRequest)
		}
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/whoami", nil, 0)
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Missing "+middleware.HeaderSharerUserID)
	})

	t.Run("bearer token identity", func(t *testing.T) {
		token, err := tokens.GenerateToken(7)
		require.NoError(t, err)

		rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/whoami", nil,
			map[string]string{"Authorization": "Bearer " + token})
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
		assert.JSONEq(t, `{"id": 7, "ok": true}`, rec.Body.String())
	})

	t.Run("header wins over token", func(t *testing.T) {
		token, err := tokens.GenerateToken(7)
		require.NoError(t, err)

		rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/whoami", nil, map[string]string{
			"Authorization":                 "Bearer " + token,
			middleware.HeaderSharerUserID: "3",
		})
		assert.JSONEq(t, `{"id": 3, "ok": true}`, rec.Body.String())
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/whoami", nil,
			map[string]string{"Authorization": "Bearer not-a-jwt"})
		httptest.AssertErrorCode(t, rec, http.StatusUnauthorized, httperr.CodeUnauthorized)
	})

	t.Run("tokens ignored without a token service", func(t *testing.T) {
		token, err := tokens.GenerateToken(7)
		require.NoError(t, err)

		rec := httptest.PerformRequestWithHeaders(t, newIdentityRouter(nil), http.MethodGet, "/whoami", nil,
			map[string]string{"Authorization": "Bearer " + token})
		httptest.AssertErrorCode(t, rec, http.StatusBadRequest, httperr.CodeBadRequest)
	})
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	r.GET("/abort", func(c *gin.Context) {
		httperr.Abort(c, errs.Mark(errs.New("missing"), errs.ErrNotFound))
	})
	r.GET("/silent", func(c *gin.Context) {
		_ = c.Error(errs.New("unreported"))
	})

	t.Run("recovers panics as 500", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil, 0)
		httptest.AssertErrorCode(t, rec, http.StatusInternalServerError, httperr.CodeInternal)
	})

	t.Run("aborted responses pass through", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/abort", nil, 0)
		httptest.AssertErrorCode(t, rec, http.StatusNotFound, httperr.CodeNotFound)
	})

	t.Run("unwritten private error becomes 500", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/silent", nil, 0)
		httptest.AssertErrorCode(t, rec, http.StatusInternalServerError, httperr.CodeInternal)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := middleware.NewLogger(config.LogConfig{Level: "error", TimeFormat: time.RFC3339})
	r := gin.New()
	r.Use(l.LoggingMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	t.Run("keeps upstream request id", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/ping", nil,
			map[string]string{middleware.HeaderRequestID: "req-123"})
		assert.Equal(t, "req-123", rec.Body.String())
		httptest.AssertHeaders(t, rec, map[string]string{middleware.HeaderRequestID: "req-123"})
	})

	t.Run("generates an id when absent", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, 0)
		assert.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get(middleware.HeaderRequestID))
	})
}
