package domain

import "time"

// MetricsObserver is the fire-and-forget observability side-channel. Pipeline
// components call it on the hot path, so implementations must never block and
// failures to record must never affect correctness. The zero-cost default is
// NopMetrics.
type MetricsObserver interface {
	// BookUpdated is called once per quote applied to an order book.
	BookUpdated(symbol string)

	// QuoteForwarded is called once per quote accepted by the gateway.
	QuoteForwarded(symbol, venue string)

	// GatewayError counts gateway-level failures by venue and error kind.
	GatewayError(venue, errType string)

	// OrderSubmitted records one order submission and its venue round trip.
	OrderSubmitted(venue string, orderType OrderType, latency time.Duration)

	// ActiveOrders adjusts the per-venue open-order gauge.
	ActiveOrders(venue string, delta float64)

	// VenueConnected flips the per-venue connection gauge.
	VenueConnected(venue string, connected bool)

	// VenueReconnect counts reconnection attempts.
	VenueReconnect(venue string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) BookUpdated(string) {}

func (NopMetrics) QuoteForwarded(string, string) {}

func (NopMetrics) GatewayError(string, string) {}

func (NopMetrics) OrderSubmitted(string, OrderType, time.Duration) {}

func (NopMetrics) ActiveOrders(string, float64) {}

func (NopMetrics) VenueConnected(string, bool) {}

func (NopMetrics) VenueReconnect(string) {}
