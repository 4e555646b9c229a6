package engine

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/book"
	"github.com/igefined/hft-engine/internal/config"
	"github.com/igefined/hft-engine/internal/domain"
	"github.com/igefined/hft-engine/internal/execution"
	"github.com/igefined/hft-engine/internal/gateway"
)

// Service wires the market-data pipeline together: venues feed the quote
// gateway, the book builder consumes the gateway stream, and the order gateway
// carries the execution boundary.
type Service struct {
	cfg     config.EngineConfig
	gateway *gateway.QuoteGateway
	builder *book.Builder
	orders  *execution.OrderGateway
	venues  []domain.VenueAdapter
	logger  *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Params struct {
	fx.In

	Cfg     *config.Config
	Gateway *gateway.QuoteGateway
	Builder *book.Builder
	Orders  *execution.OrderGateway
	Venues  []domain.VenueAdapter `group:"venues"`
	Logger  *zap.Logger
}

func NewService(params Params) *Service {
	return &Service{
		cfg:     params.Cfg.Engine,
		gateway: params.Gateway,
		builder: params.Builder,
		orders:  params.Orders,
		venues:  params.Venues,
		logger:  params.Logger.Named("engine"),
	}
}

// Start registers the configured venues, launches the book builder and
// subscribes to the configured symbols. It fails when every venue rejects the
// subscription.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting engine",
		zap.Int("venues", len(s.venues)),
		zap.Strings("symbols", s.cfg.Symbols))

	for _, venue := range s.venues {
		s.gateway.AddVenue(ctx, venue)
		s.orders.AddVenue(venue)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.builder.Run(runCtx)
	}()

	if len(s.cfg.Symbols) > 0 {
		if err := s.gateway.Subscribe(ctx, s.cfg.Symbols); err != nil {
			s.logger.Error("Subscription failed", zap.Error(err))
			return err
		}
	}

	return nil
}

// Stop unsubscribes, stops every venue and shuts the pipeline down.
func (s *Service) Stop() error {
	s.logger.Info("Stopping engine")

	s.gateway.UnsubscribeAll()
	err := s.gateway.StopVenues()
	s.gateway.Close()

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	return err
}
