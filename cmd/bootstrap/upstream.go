package bootstrap

import (
	"roomscout/internal/adapter/httpclient"
	"roomscout/internal/pkg/config"

	"go.uber.org/fx"
)

// UpstreamModule provides the single process-lifetime HTTP client all
// source adapters share.
var UpstreamModule = fx.Module("upstream",
	fx.Provide(
		NewUpstreamClient,
	),
)

func NewUpstreamClient(cfg config.Config) *httpclient.Client {
	return httpclient.New(cfg.Upstream)
}
