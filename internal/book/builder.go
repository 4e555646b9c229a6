package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/domain"
)

// Builder is the single consumer of the gateway quote stream. It applies each
// quote to the shared Books map in channel-arrival order.
type Builder struct {
	books   *Books
	quotes  <-chan domain.Quote
	metrics domain.MetricsObserver
	logger  *zap.Logger
}

func NewBuilder(books *Books, quotes <-chan domain.Quote, metrics domain.MetricsObserver, logger *zap.Logger) *Builder {
	return &Builder{
		books:   books,
		quotes:  quotes,
		metrics: metrics,
		logger:  logger.Named("book"),
	}
}

// Run consumes quotes until ctx is cancelled or the quote channel is closed.
func (b *Builder) Run(ctx context.Context) {
	b.logger.Info("Book builder started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Book builder stopped", zap.Int("books", b.books.Len()))
			return
		case quote, ok := <-b.quotes:
			if !ok {
				b.logger.Info("Quote channel closed, book builder stopping")
				return
			}
			b.books.Apply(quote)
			b.metrics.BookUpdated(quote.Symbol)

			b.logger.Debug("Applied quote",
				zap.String("symbol", quote.Symbol),
				zap.String("venue", quote.Venue),
				zap.Float64("bid", quote.Bid),
				zap.Float64("ask", quote.Ask))
		}
	}
}
