package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/igefined/hft-engine/internal/domain"
)

// Prometheus implements domain.MetricsObserver on a dedicated registry.
// All recording is fire-and-forget; nothing here returns an error to the
// pipeline.
type Prometheus struct {
	bookUpdates      *prometheus.CounterVec
	quoteThroughput  *prometheus.CounterVec
	gatewayErrors    *prometheus.CounterVec
	orderLatency     *prometheus.HistogramVec
	activeOrders     *prometheus.GaugeVec
	venueConnections *prometheus.GaugeVec
	venueReconnects  *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		bookUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hft_orderbook_updates_total",
			Help: "Total number of orderbook updates",
		}, []string{"symbol"}),
		quoteThroughput: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hft_quote_gateway_throughput_total",
			Help: "Total number of quotes processed by the gateway",
		}, []string{"symbol", "venue"}),
		gatewayErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hft_quote_gateway_errors_total",
			Help: "Total number of errors in the quote gateway",
		}, []string{"venue", "error_type"}),
		orderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hft_order_latency_seconds",
			Help:    "Order execution latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"venue", "order_type"}),
		activeOrders: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hft_active_orders",
			Help: "Number of active orders",
		}, []string{"venue"}),
		venueConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hft_venue_connections",
			Help: "Connection status for venues (1=connected, 0=disconnected)",
		}, []string{"venue"}),
		venueReconnects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hft_venue_reconnects_total",
			Help: "Total number of venue reconnection attempts",
		}, []string{"venue"}),
	}
}

func (p *Prometheus) BookUpdated(symbol string) {
	p.bookUpdates.WithLabelValues(symbol).Inc()
}

func (p *Prometheus) QuoteForwarded(symbol, venue string) {
	p.quoteThroughput.WithLabelValues(symbol, venue).Inc()
}

func (p *Prometheus) GatewayError(venue, errType string) {
	p.gatewayErrors.WithLabelValues(venue, errType).Inc()
}

func (p *Prometheus) OrderSubmitted(venue string, orderType domain.OrderType, latency time.Duration) {
	p.orderLatency.WithLabelValues(venue, string(orderType)).Observe(latency.Seconds())
}

func (p *Prometheus) ActiveOrders(venue string, delta float64) {
	p.activeOrders.WithLabelValues(venue).Add(delta)
}

func (p *Prometheus) VenueConnected(venue string, connected bool) {
	value := 0.0
	if connected {
		value = 1.0
	}
	p.venueConnections.WithLabelValues(venue).Set(value)
}

func (p *Prometheus) VenueReconnect(venue string) {
	p.venueReconnects.WithLabelValues(venue).Inc()
}
