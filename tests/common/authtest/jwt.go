//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"shareit/internal/pkg/config"
	"shareit/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.AuthConfig
}

func NewJWTHelper(cfg config.AuthConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.JWTSecret, h.cfg.JWTDuration).GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.JWTSecret, time.Millisecond).GenerateToken(userID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

// BearerHeaders is the header set for PerformRequestWithHeaders.
func (h *JWTHelper) BearerHeaders(t *testing.T, userID int64) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + h.GenerateToken(t, userID)}
}
