package book

import (
	"sync"

	"github.com/igefined/hft-engine/internal/domain"
)

// Books is the shared symbol → OrderBook map. BookBuilder is the sole writer;
// strategy-side readers take the read lock only. The lock is coarse across all
// symbols; per-symbol sharding is a possible optimization if venue fan-out
// makes it a contention point.
type Books struct {
	mu    sync.RWMutex
	books map[string]*OrderBook
}

func NewBooks() *Books {
	return &Books{books: make(map[string]*OrderBook)}
}

// Apply upserts the quote into the symbol's book, creating the book on first
// sight of the symbol.
func (b *Books) Apply(quote domain.Quote) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ob, ok := b.books[quote.Symbol]
	if !ok {
		ob = NewOrderBook(quote.Symbol)
		b.books[quote.Symbol] = ob
	}
	ob.Update(quote.Bid, quote.BidSize, quote.Ask, quote.AskSize)
}

// Best returns the current best bid and ask for a symbol. Either level may be
// absent independently.
func (b *Books) Best(symbol string) (bid Level, bidOK bool, ask Level, askOK bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ob, ok := b.books[symbol]
	if !ok {
		return Level{}, false, Level{}, false
	}
	bid, bidOK = ob.BestBid()
	ask, askOK = ob.BestAsk()
	return bid, bidOK, ask, askOK
}

// Levels returns copies of both sides of a symbol's book, best-first.
func (b *Books) Levels(symbol string) (bids, asks []Level, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ob, found := b.books[symbol]
	if !found {
		return nil, nil, false
	}
	return ob.Bids(), ob.Asks(), true
}

// Symbols returns the symbols with a book, in no particular order.
func (b *Books) Symbols() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	symbols := make([]string, 0, len(b.books))
	for s := range b.books {
		symbols = append(symbols, s)
	}
	return symbols
}

// Len returns the number of books.
func (b *Books) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.books)
}
