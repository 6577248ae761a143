package bootstrap

import (
	"log/slog"

	"shareit/internal/pkg/config"
	"shareit/internal/pkg/jwt"

	"go.uber.org/fx"
)

var AuthModule = fx.Module("auth",
	fx.Provide(
		NewJWTService,
	),
)

// NewJWTService returns nil when no secret is configured, which leaves the
// X-Sharer-User-Id header as the only identity source.
func NewJWTService(cfg config.Config) *jwt.Service {
	if cfg.Auth.JWTSecret == "" {
		return nil
	}
	slog.Info("bearer identity tokens enabled", "duration", cfg.Auth.JWTDuration)
	return jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTDuration)
}
