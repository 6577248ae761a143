package bootstrap

import (
	"shareit/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StoreModule,
	CacheModule,
	AuthModule,
	components.UseCaseModule,
	components.HandlerModule,
)
