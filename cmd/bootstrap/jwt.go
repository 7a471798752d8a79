package bootstrap

import (
	"unicart/internal/handler/middleware"
	"unicart/internal/pkg/config"
	"unicart/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		NewAuthenticator,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT)
}

func NewAuthenticator(svc *jwt.Service) middleware.Authenticator {
	return svc
}
