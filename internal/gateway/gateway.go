package gateway

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/domain"
)

// QuoteGateway owns the venue registry and per-venue subscription state and
// forwards validated quotes from all venues into the single bounded channel
// consumed by the book builder.
type QuoteGateway struct {
	logger  *zap.Logger
	metrics domain.MetricsObserver

	quotes chan domain.Quote
	done   chan struct{}
	closed sync.Once

	venuesMu sync.RWMutex
	venues   []domain.VenueAdapter

	subsMu  sync.RWMutex
	subs    map[string][]string
	running bool
}

func NewQuoteGateway(bufferSize int, metrics domain.MetricsObserver, logger *zap.Logger) *QuoteGateway {
	return &QuoteGateway{
		logger:  logger.Named("gateway"),
		metrics: metrics,
		quotes:  make(chan domain.Quote, bufferSize),
		done:    make(chan struct{}),
		subs:    make(map[string][]string),
	}
}

// Quotes returns the outbound quote stream. Single consumer, FIFO per venue.
func (g *QuoteGateway) Quotes() <-chan domain.Quote {
	return g.quotes
}

// AddVenue registers an adapter. When the gateway is already running and the
// subscription table holds symbols for a venue with this name, the adapter is
// immediately re-subscribed so it catches up to the active subscription;
// catch-up failures are logged, not escalated.
func (g *QuoteGateway) AddVenue(ctx context.Context, venue domain.VenueAdapter) {
	name := venue.Name()
	g.logger.Debug("Adding venue", zap.String("venue", name))

	g.venuesMu.Lock()
	g.venues = append(g.venues, venue)
	g.venuesMu.Unlock()

	g.subsMu.RLock()
	running := g.running
	symbols := g.subs[name]
	g.subsMu.RUnlock()

	if running && len(symbols) > 0 {
		if err := venue.SubscribeQuotes(ctx, symbols); err != nil {
			g.metrics.GatewayError(name, "catch_up_subscribe")
			g.logger.Error("Failed to subscribe new venue to existing symbols",
				zap.String("venue", name),
				zap.Strings("symbols", symbols),
				zap.Error(err))
		}
	}
}

// RemoveVenue removes and stops the named adapter. The registry is left
// unmodified when no adapter with that name is registered.
func (g *QuoteGateway) RemoveVenue(name string) error {
	g.logger.Debug("Removing venue", zap.String("venue", name))

	g.venuesMu.Lock()
	idx := -1
	for i, v := range g.venues {
		if v.Name() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		g.venuesMu.Unlock()
		g.logger.Warn("Attempted to remove venue that was not found", zap.String("venue", name))
		return fmt.Errorf("%w: %s", domain.ErrVenueNotFound, name)
	}
	removed := g.venues[idx]
	g.venues = append(g.venues[:idx], g.venues[idx+1:]...)
	g.venuesMu.Unlock()

	return removed.Stop()
}

// Subscribe attempts to subscribe every registered venue to the given symbols.
// Each venue is tried independently; the call succeeds, and the gateway
// transitions to running, as long as at least one venue subscribed. Only when
// every venue fails does it return an aggregated subscription error.
func (g *QuoteGateway) Subscribe(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return fmt.Errorf("%w: empty symbol list", domain.ErrInvalidSymbol)
	}

	g.logger.Info("Subscribing to symbols", zap.Strings("symbols", symbols))

	g.venuesMu.RLock()
	venues := make([]domain.VenueAdapter, len(g.venues))
	copy(venues, g.venues)
	g.venuesMu.RUnlock()

	if len(venues) == 0 {
		return domain.ErrNoVenuesConfigured
	}

	var errs error
	failures := 0
	for _, venue := range venues {
		name := venue.Name()
		if err := venue.SubscribeQuotes(ctx, symbols); err != nil {
			failures++
			g.metrics.GatewayError(name, "subscribe")
			g.logger.Error("Failed to subscribe venue",
				zap.String("venue", name),
				zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		g.subsMu.Lock()
		g.subs[name] = append([]string(nil), symbols...)
		g.subsMu.Unlock()

		g.logger.Debug("Venue subscription successful", zap.String("venue", name))
	}

	if failures == len(venues) {
		return fmt.Errorf("%w: %s", domain.ErrSubscriptionFailed, errs)
	}

	g.subsMu.Lock()
	g.running = true
	g.subsMu.Unlock()

	return nil
}

// ForwardQuote pushes a quote into the bounded channel, blocking while the
// channel is full. It fails only when the pipeline has been shut down; that is
// fatal for the quote, not retried.
func (g *QuoteGateway) ForwardQuote(quote domain.Quote) error {
	// A closed pipeline must refuse the quote even when the buffered send
	// would also be ready, so check done before entering the send select.
	if err := g.checkClosed(quote.Venue); err != nil {
		return err
	}

	select {
	case <-g.done:
		g.metrics.GatewayError(quote.Venue, "channel_send")
		return fmt.Errorf("%w: pipeline closed", domain.ErrChannelSendFailed)
	case g.quotes <- quote:
		g.metrics.QuoteForwarded(quote.Symbol, quote.Venue)
		return nil
	}
}

// TryForwardQuote is the non-blocking variant for callers that must never
// block on backpressure; a full channel drops the quote with
// ErrChannelCapacityExceeded. The streaming adapters use the blocking
// ForwardQuote so a slow consumer throttles the socket read instead of
// shedding ticks.
func (g *QuoteGateway) TryForwardQuote(quote domain.Quote) error {
	if err := g.checkClosed(quote.Venue); err != nil {
		return err
	}

	select {
	case g.quotes <- quote:
		g.metrics.QuoteForwarded(quote.Symbol, quote.Venue)
		return nil
	default:
		g.metrics.GatewayError(quote.Venue, "channel_capacity")
		return domain.ErrChannelCapacityExceeded
	}
}

func (g *QuoteGateway) checkClosed(venue string) error {
	select {
	case <-g.done:
		g.metrics.GatewayError(venue, "channel_send")
		return fmt.Errorf("%w: pipeline closed", domain.ErrChannelSendFailed)
	default:
		return nil
	}
}

// UnsubscribeAll clears the running flag and the subscription table. Venues
// keep their background tasks and the quote channel stays open.
func (g *QuoteGateway) UnsubscribeAll() {
	g.logger.Info("Unsubscribing from all symbols")

	g.subsMu.Lock()
	g.running = false
	g.subs = make(map[string][]string)
	g.subsMu.Unlock()
}

// StopVenues stops every registered adapter, keeping them registered.
func (g *QuoteGateway) StopVenues() error {
	g.venuesMu.RLock()
	venues := make([]domain.VenueAdapter, len(g.venues))
	copy(venues, g.venues)
	g.venuesMu.RUnlock()

	var errs error
	for _, venue := range venues {
		if err := venue.Stop(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", venue.Name(), err))
		}
	}
	return errs
}

// Close shuts the forwarding path down. Subsequent ForwardQuote calls fail
// with ErrChannelSendFailed. Idempotent.
func (g *QuoteGateway) Close() {
	g.closed.Do(func() { close(g.done) })
}

// IsRunning reports whether at least one venue subscription is active.
func (g *QuoteGateway) IsRunning() bool {
	g.subsMu.RLock()
	defer g.subsMu.RUnlock()
	return g.running
}

// Subscriptions returns a copy of the venue → symbols subscription table.
func (g *QuoteGateway) Subscriptions() map[string][]string {
	g.subsMu.RLock()
	defer g.subsMu.RUnlock()

	out := make(map[string][]string, len(g.subs))
	for venue, symbols := range g.subs {
		out[venue] = append([]string(nil), symbols...)
	}
	return out
}

// VenueCount returns the number of registered venues.
func (g *QuoteGateway) VenueCount() int {
	g.venuesMu.RLock()
	defer g.venuesMu.RUnlock()
	return len(g.venues)
}
