package main

import (
	"go.uber.org/fx"

	"github.com/igefined/hft-engine/pkg/logger"

	"github.com/igefined/hft-engine/internal/book"
	"github.com/igefined/hft-engine/internal/config"
	"github.com/igefined/hft-engine/internal/engine"
	"github.com/igefined/hft-engine/internal/execution"
	"github.com/igefined/hft-engine/internal/gateway"
	"github.com/igefined/hft-engine/internal/metrics"
	"github.com/igefined/hft-engine/internal/venues/binance"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		metrics.Module,
		// Pipeline modules
		gateway.Module,
		book.Module,
		execution.Module,
		// Venue modules
		binance.Module,
		// Wiring
		engine.Module,
	).Run()
}
