package binance

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/config"
	"github.com/igefined/hft-engine/internal/domain"
	"github.com/igefined/hft-engine/internal/gateway"
)

const moduleName = "binance"

var Module = fx.Module(moduleName,
	fx.Provide(
		fx.Annotate(
			func(cfg *config.Config, gw *gateway.QuoteGateway, metrics domain.MetricsObserver, logger *zap.Logger) domain.VenueAdapter {
				return New(cfg.Binance, gw, metrics, logger)
			},
			fx.ResultTags(`group:"venues"`),
		),
	),
)
