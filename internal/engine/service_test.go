package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/book"
	"github.com/igefined/hft-engine/internal/config"
	"github.com/igefined/hft-engine/internal/domain"
	"github.com/igefined/hft-engine/internal/execution"
	"github.com/igefined/hft-engine/internal/gateway"
	"github.com/igefined/hft-engine/internal/venues/venuetest"
)

type fixture struct {
	svc   *Service
	books *book.Books
	gw    *gateway.QuoteGateway
}

// newFixture builds the full pipeline around the given venue factory. The
// factory receives the gateway so generated quotes can be sunk into it.
func newFixture(symbols []string, makeVenues func(gw *gateway.QuoteGateway) []domain.VenueAdapter) fixture {
	logger := zap.NewNop()
	metrics := domain.NopMetrics{}
	gw := gateway.NewQuoteGateway(100, metrics, logger)
	books := book.NewBooks()

	svc := NewService(Params{
		Cfg: &config.Config{
			Engine: config.EngineConfig{Symbols: symbols, QuoteBufferSize: 100},
		},
		Gateway: gw,
		Builder: book.NewBuilder(books, gw.Quotes(), metrics, logger),
		Orders:  execution.NewOrderGateway(metrics, logger),
		Venues:  makeVenues(gw),
		Logger:  logger,
	})
	return fixture{svc: svc, books: books, gw: gw}
}

func TestEngineEndToEnd(t *testing.T) {
	var venue *venuetest.Venue
	f := newFixture([]string{"BTCUSDT"}, func(gw *gateway.QuoteGateway) []domain.VenueAdapter {
		venue = venuetest.New("MOCK",
			venuetest.WithSink(gw),
			venuetest.WithQuoteInterval(5*time.Millisecond))
		return []domain.VenueAdapter{venue}
	})

	require.NoError(t, f.svc.Start(context.Background()))
	assert.True(t, f.gw.IsRunning())
	assert.Equal(t, []string{"BTCUSDT"}, venue.Subscribed())

	require.Eventually(t, func() bool {
		_, bidOK, _, askOK := f.books.Best("BTCUSDT")
		return bidOK && askOK
	}, 2*time.Second, 10*time.Millisecond, "quotes must flow into the book")

	bid, _, ask, _ := f.books.Best("BTCUSDT")
	assert.Greater(t, bid.Price, 0.0)
	assert.Greater(t, ask.Price, bid.Price)

	require.NoError(t, f.svc.Stop())
	assert.False(t, f.gw.IsRunning())
	assert.GreaterOrEqual(t, venue.StopCalls(), 1)
}

func TestEngineStartFailsWhenAllVenuesFail(t *testing.T) {
	f := newFixture([]string{"BTCUSDT"}, func(gw *gateway.QuoteGateway) []domain.VenueAdapter {
		return []domain.VenueAdapter{
			venuetest.New("BAD", venuetest.WithSubscribeError(domain.ErrConnectionFailed)),
		}
	})

	err := f.svc.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrSubscriptionFailed)

	require.NoError(t, f.svc.Stop())
}

func TestEngineStartWithoutSymbols(t *testing.T) {
	var venue *venuetest.Venue
	f := newFixture(nil, func(gw *gateway.QuoteGateway) []domain.VenueAdapter {
		venue = venuetest.New("MOCK")
		return []domain.VenueAdapter{venue}
	})

	require.NoError(t, f.svc.Start(context.Background()))
	assert.False(t, f.gw.IsRunning())
	assert.Empty(t, venue.Subscribed())

	require.NoError(t, f.svc.Stop())
}
