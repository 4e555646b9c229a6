// Package venuetest provides a scripted venue adapter for gateway and engine
// tests: it records subscriptions, can be forced to fail, and can generate a
// synthetic quote stream.
package venuetest

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/igefined/hft-engine/internal/domain"
)

type Option func(*Venue)

// WithSink sets the destination for generated quotes.
func WithSink(sink domain.QuoteSink) Option {
	return func(v *Venue) { v.sink = sink }
}

// WithSubscribeError makes every SubscribeQuotes call fail with err.
func WithSubscribeError(err error) Option {
	return func(v *Venue) { v.subscribeErr = err }
}

// WithQuoteInterval enables quote generation at the given interval.
func WithQuoteInterval(interval time.Duration) Option {
	return func(v *Venue) { v.interval = interval }
}

// WithBasePrices sets per-symbol mid prices for generated quotes.
func WithBasePrices(prices map[string]float64) Option {
	return func(v *Venue) { v.basePrices = prices }
}

type Venue struct {
	name         string
	sink         domain.QuoteSink
	subscribeErr error
	interval     time.Duration
	basePrices   map[string]float64

	mu         sync.Mutex
	subscribed []string
	stopCalls  int
	running    bool
	done       chan struct{}
	wg         sync.WaitGroup
}

func New(name string, opts ...Option) *Venue {
	v := &Venue{
		name: name,
		basePrices: map[string]float64{
			"BTCUSDT": 50000.0,
			"ETHUSDT": 3000.0,
		},
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Venue) Name() string {
	return v.name
}

func (v *Venue) SubscribeQuotes(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return fmt.Errorf("%w: empty symbol list", domain.ErrSubscriptionFailed)
	}
	if v.subscribeErr != nil {
		return v.subscribeErr
	}

	v.mu.Lock()
	v.subscribed = append([]string(nil), symbols...)
	start := v.sink != nil && v.interval > 0 && !v.running
	if start {
		v.running = true
	}
	v.mu.Unlock()

	if start {
		v.wg.Add(1)
		go v.generate()
	}
	return nil
}

func (v *Venue) generate() {
	defer v.wg.Done()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-v.done:
			return
		case <-ticker.C:
			v.mu.Lock()
			symbols := append([]string(nil), v.subscribed...)
			v.mu.Unlock()

			for _, symbol := range symbols {
				base, ok := v.basePrices[symbol]
				if !ok {
					base = 100.0
				}
				mid := base * (1 + (rand.Float64()-0.5)*0.01)
				spread := mid * 0.0002

				quote := domain.Quote{
					Symbol:    symbol,
					Bid:       mid - spread/2,
					Ask:       mid + spread/2,
					BidSize:   0.1 + rand.Float64()*9.9,
					AskSize:   0.1 + rand.Float64()*9.9,
					Venue:     v.name,
					Timestamp: time.Now().UnixMilli(),
				}
				if err := v.sink.ForwardQuote(quote); err != nil {
					return
				}
			}
		}
	}
}

func (v *Venue) SubmitOrder(ctx context.Context, order domain.Order) (string, error) {
	if order.Quantity <= 0 {
		return "", fmt.Errorf("%w: invalid quantity: %v", domain.ErrOrderSubmissionFailed, order.Quantity)
	}
	if order.Type == domain.Limit && order.Price <= 0 {
		return "", fmt.Errorf("%w: invalid price for limit order: %v", domain.ErrOrderSubmissionFailed, order.Price)
	}
	return fmt.Sprintf("mock_order_%s_%d", order.Symbol, time.Now().UnixMilli()), nil
}

func (v *Venue) Stop() error {
	v.mu.Lock()
	v.stopCalls++
	if v.running {
		v.running = false
		close(v.done)
	}
	v.mu.Unlock()

	v.wg.Wait()
	return nil
}

// Subscribed returns the symbols from the most recent subscription.
func (v *Venue) Subscribed() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.subscribed...)
}

// StopCalls returns how many times Stop has been invoked.
func (v *Venue) StopCalls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stopCalls
}
