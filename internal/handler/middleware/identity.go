package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	HeaderSharerUserID = "X-Sharer-User-Id"

	ctxUserIDKey = "user_id"
)

var errMissingIdentity = errs.Mark(errs.New("caller identity required"), errs.ErrBadRequest)

// IdentityMiddleware resolves the caller from X-Sharer-User-Id, or from a
// bearer token when a token service is configured.
type IdentityMiddleware struct {
	tokens *jwt.Service
}

// NewIdentityMiddleware accepts a nil service, which disables bearer tokens.
func NewIdentityMiddleware(tokens *jwt.Service) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens}
}

func (m *IdentityMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(HeaderSharerUserID); raw != "" {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil || id <= 0 {
				httperr.AbortWithError(c, http.StatusBadRequest,
					errs.Wrapf(errMissingIdentity, "header %s=%q", HeaderSharerUserID, raw),
					HeaderSharerUserID+" must be a positive integer", nil)
				return
			}
			c.Set(ctxUserIDKey, id)
			c.Next()
			return
		}

		if token := bearerToken(c); token != "" && m.tokens != nil {
			id, err := m.tokens.ValidateToken(token)
			if err != nil {
				slog.Warn("Token validation failed in identity middleware", "error", err.Error())
				httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
				return
			}
			c.Set(ctxUserIDKey, id)
			c.Next()
			return
		}

		httperr.AbortWithError(c, http.StatusBadRequest, errMissingIdentity,
			"Missing "+HeaderSharerUserID+" header", nil)
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int64)
	return id, ok
}
