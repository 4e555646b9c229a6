package book

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/domain"
	"github.com/igefined/hft-engine/internal/gateway"
)

const moduleName = "book"

var Module = fx.Module(moduleName,
	fx.Provide(
		NewBooks,
		func(books *Books, gw *gateway.QuoteGateway, metrics domain.MetricsObserver, logger *zap.Logger) *Builder {
			return NewBuilder(books, gw.Quotes(), metrics, logger)
		},
	),
)
