package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/config"
	"github.com/igefined/hft-engine/internal/domain"
)

const moduleName = "metrics"

var Module = fx.Module(moduleName,
	fx.Provide(
		prometheus.NewRegistry,
		func(reg *prometheus.Registry) *Prometheus {
			return NewPrometheus(reg)
		},
		func(p *Prometheus) domain.MetricsObserver {
			return p
		},
		func(cfg *config.Config, reg *prometheus.Registry, logger *zap.Logger) *Server {
			return NewServer(cfg.Metrics.ListenAddr, reg, logger)
		},
	),
	fx.Invoke(func(lc fx.Lifecycle, server *Server) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				server.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Stop(ctx)
			},
		})
	}),
)
