package components

import (
	"roomscout/internal/infra/repository"
	"roomscout/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewRoomCatalogRepository,
			fx.As(new(usecase.RoomCatalog)),
		),
		fx.Annotate(
			repository.NewFavoriteRepository,
			fx.As(new(usecase.FavoriteRepository)),
		),
	),
)
