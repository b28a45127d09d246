package components

import (
	"roomscout/internal/handler"
	"roomscout/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewFavoritesHandler,
	),
	fx.Invoke(handler.NewRouter),
)
