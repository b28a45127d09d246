package bootstrap

import (
	"roomscout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	UpstreamModule,
	components.AdapterModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
