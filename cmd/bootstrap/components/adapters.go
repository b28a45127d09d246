package components

import (
	"roomscout/internal/adapter"
	"roomscout/internal/adapter/dream"
	"roomscout/internal/adapter/groove"
	"roomscout/internal/adapter/httpclient"
	"roomscout/internal/adapter/naver"
	"roomscout/internal/pkg/clock"
	"roomscout/internal/pkg/config"

	"go.uber.org/fx"
)

// AdapterModule constructs every source adapter and the routing table.
// The adapter map is assembled here, explicitly; adding a source means
// adding its checker to this map and, if rooms route to it by business,
// an entry in the router table.
var AdapterModule = fx.Module("adapters",
	fx.Provide(
		NewSourceAdapters,
		adapter.NewDefaultRouter,
	),
)

func NewSourceAdapters(cfg config.Config, client *httpclient.Client, clk clock.Clock) map[string]adapter.Source {
	return map[string]adapter.Source{
		adapter.NameDream:  dream.NewChecker(cfg.Dream, client, clk),
		adapter.NameGroove: groove.NewChecker(cfg.Groove, client, clk),
		adapter.NameNaver:  naver.NewChecker(cfg.Naver, client),
	}
}
