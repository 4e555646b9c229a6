package execution

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/domain"
)

// OrderGateway routes orders to the venue named on the order. It is the thin
// boundary of the execution path; risk checks and order state tracking live
// outside this module.
type OrderGateway struct {
	logger  *zap.Logger
	metrics domain.MetricsObserver

	mu     sync.RWMutex
	venues map[string]domain.VenueAdapter
}

func NewOrderGateway(metrics domain.MetricsObserver, logger *zap.Logger) *OrderGateway {
	return &OrderGateway{
		logger:  logger.Named("orders"),
		metrics: metrics,
		venues:  make(map[string]domain.VenueAdapter),
	}
}

// AddVenue registers an adapter as an order destination.
func (g *OrderGateway) AddVenue(venue domain.VenueAdapter) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.venues[venue.Name()] = venue
}

// RemoveVenue deregisters an order destination.
func (g *OrderGateway) RemoveVenue(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.venues[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrVenueNotFound, name)
	}
	delete(g.venues, name)
	return nil
}

// SubmitOrder forwards the order to its venue and returns the venue order id.
func (g *OrderGateway) SubmitOrder(ctx context.Context, order domain.Order) (string, error) {
	g.mu.RLock()
	venue, ok := g.venues[order.Venue]
	g.mu.RUnlock()

	if !ok {
		g.metrics.GatewayError(order.Venue, "order_venue_not_found")
		return "", fmt.Errorf("%w: %s", domain.ErrVenueNotFound, order.Venue)
	}

	orderID, err := venue.SubmitOrder(ctx, order)
	if err != nil {
		g.metrics.GatewayError(order.Venue, "order_submit")
		g.logger.Error("Order submission failed",
			zap.String("venue", order.Venue),
			zap.String("symbol", order.Symbol),
			zap.Error(err))
		return "", err
	}

	g.logger.Info("Order routed",
		zap.String("venue", order.Venue),
		zap.String("symbol", order.Symbol),
		zap.String("order_id", orderID))
	return orderID, nil
}
