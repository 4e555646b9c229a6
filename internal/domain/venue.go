package domain

import "context"

// VenueAdapter is the capability surface every venue implements. Adapters that
// stream market data own a background connection task; Stop signals that task
// to terminate and must be idempotent.
type VenueAdapter interface {
	// Name returns the stable venue identifier.
	Name() string

	// SubscribeQuotes establishes or updates a live quote subscription for the
	// given symbols. For streaming venues this also connects if not already
	// connected. An empty symbol list fails with ErrSubscriptionFailed.
	SubscribeQuotes(ctx context.Context, symbols []string) error

	// SubmitOrder sends an order to the venue and returns the venue order id.
	SubmitOrder(ctx context.Context, order Order) (string, error)

	// Stop signals any background task to terminate.
	Stop() error
}

// QuoteSink receives validated quotes from venue adapters.
type QuoteSink interface {
	ForwardQuote(quote Quote) error
}
