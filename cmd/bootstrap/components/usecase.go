package components

import (
	"log/slog"

	"roomscout/internal/adapter"
	"roomscout/internal/pkg/clock"
	"roomscout/internal/pkg/config"
	"roomscout/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.New,
		NewAvailabilityUseCase,
		usecase.NewFavoritesUseCase,
	),
)

func NewAvailabilityUseCase(
	cfg config.Config,
	adapters map[string]adapter.Source,
	router *adapter.Router,
	catalog usecase.RoomCatalog,
	clk clock.Clock,
	logger *slog.Logger,
) usecase.AvailabilityUseCase {
	return usecase.NewAvailabilityUseCase(adapters, router, catalog, clk, logger, cfg.Aggregator.Deadline)
}
