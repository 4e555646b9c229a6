package book

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igefined/hft-engine/internal/domain"
)

func TestBooksLazyCreation(t *testing.T) {
	books := NewBooks()
	assert.Equal(t, 0, books.Len())

	books.Apply(domain.Quote{Symbol: "BTCUSDT", Bid: 50000, BidSize: 1, Ask: 50001, AskSize: 1})
	books.Apply(domain.Quote{Symbol: "ETHUSDT", Bid: 3000, BidSize: 1, Ask: 3001, AskSize: 1})

	assert.Equal(t, 2, books.Len())
	assert.ElementsMatch(t, []string{"BTCUSDT", "ETHUSDT"}, books.Symbols())
}

func TestBooksBest(t *testing.T) {
	books := NewBooks()

	_, bidOK, _, askOK := books.Best("BTCUSDT")
	assert.False(t, bidOK)
	assert.False(t, askOK)

	books.Apply(domain.Quote{Symbol: "BTCUSDT", Bid: 50000, BidSize: 1.5, Ask: 50001, AskSize: 2.5})

	bid, bidOK, ask, askOK := books.Best("BTCUSDT")
	require.True(t, bidOK)
	require.True(t, askOK)
	assert.Equal(t, 50000.0, bid.Price)
	assert.Equal(t, 1.5, bid.Size)
	assert.Equal(t, 50001.0, ask.Price)
	assert.Equal(t, 2.5, ask.Size)
}

func TestBooksConcurrentUpdates(t *testing.T) {
	const n = 100
	books := NewBooks()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			price := 50000.0 + float64(i)
			books.Apply(domain.Quote{
				Symbol:  "BTCUSDT",
				Bid:     price,
				BidSize: 1.0,
				Ask:     price + 1000,
				AskSize: 1.0,
			})
		}(i)
	}
	wg.Wait()

	bids, asks, ok := books.Levels("BTCUSDT")
	require.True(t, ok)
	assert.Len(t, bids, n, "no bid update may be lost")
	assert.Len(t, asks, n, "no ask update may be lost")

	bid, bidOK, _, _ := books.Best("BTCUSDT")
	require.True(t, bidOK)
	assert.Equal(t, 50000.0+float64(n-1), bid.Price)
}

func TestBooksDistinctSymbols(t *testing.T) {
	books := NewBooks()
	for i := 0; i < 10; i++ {
		books.Apply(domain.Quote{
			Symbol:  fmt.Sprintf("SYM%dUSDT", i),
			Bid:     100 + float64(i),
			BidSize: 1,
			Ask:     101 + float64(i),
			AskSize: 1,
		})
	}
	assert.Equal(t, 10, books.Len())
}
