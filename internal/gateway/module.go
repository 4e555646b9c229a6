package gateway

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/config"
	"github.com/igefined/hft-engine/internal/domain"
)

const moduleName = "gateway"

var Module = fx.Module(moduleName,
	fx.Provide(
		func(cfg *config.Config, metrics domain.MetricsObserver, logger *zap.Logger) *QuoteGateway {
			return NewQuoteGateway(cfg.Engine.QuoteBufferSize, metrics, logger)
		},
	),
)
