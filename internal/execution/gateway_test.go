package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/domain"
	"github.com/igefined/hft-engine/internal/venues/venuetest"
)

func TestSubmitOrderRoutesToVenue(t *testing.T) {
	gw := NewOrderGateway(domain.NopMetrics{}, zap.NewNop())
	gw.AddVenue(venuetest.New("MOCK"))

	id, err := gw.SubmitOrder(context.Background(), domain.Order{
		Symbol:   "BTCUSDT",
		Side:     domain.Buy,
		Quantity: 1,
		Price:    50000,
		Venue:    "MOCK",
		Type:     domain.Limit,
	})
	require.NoError(t, err)
	assert.Contains(t, id, "mock_order_BTCUSDT")
}

func TestSubmitOrderUnknownVenue(t *testing.T) {
	gw := NewOrderGateway(domain.NopMetrics{}, zap.NewNop())

	_, err := gw.SubmitOrder(context.Background(), domain.Order{
		Symbol: "BTCUSDT", Quantity: 1, Price: 50000, Venue: "NONEXISTENT", Type: domain.Limit,
	})
	assert.ErrorIs(t, err, domain.ErrVenueNotFound)
}

func TestSubmitOrderVenueRejection(t *testing.T) {
	gw := NewOrderGateway(domain.NopMetrics{}, zap.NewNop())
	gw.AddVenue(venuetest.New("MOCK"))

	_, err := gw.SubmitOrder(context.Background(), domain.Order{
		Symbol: "BTCUSDT", Quantity: -1, Price: 50000, Venue: "MOCK", Type: domain.Limit,
	})
	assert.ErrorIs(t, err, domain.ErrOrderSubmissionFailed)
}

func TestRemoveVenue(t *testing.T) {
	gw := NewOrderGateway(domain.NopMetrics{}, zap.NewNop())
	gw.AddVenue(venuetest.New("MOCK"))

	require.NoError(t, gw.RemoveVenue("MOCK"))
	assert.ErrorIs(t, gw.RemoveVenue("MOCK"), domain.ErrVenueNotFound)
}
