package execution

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/domain"
)

const moduleName = "execution"

var Module = fx.Module(moduleName,
	fx.Provide(
		func(metrics domain.MetricsObserver, logger *zap.Logger) *OrderGateway {
			return NewOrderGateway(metrics, logger)
		},
	),
)
