package book

import (
	"math"

	"github.com/tidwall/btree"
)

// PriceScale converts float prices into exact integer map keys. 1e8 keeps
// sub-cent precision for crypto-asset prices while giving a total order that
// float keys cannot (NaN, ties under rounding).
const PriceScale = 1e8

// ScalePrice returns the integer key for a price. Rounds to the nearest
// scaled unit; truncation would drop the last decimal for prices like 8.2
// whose float64 product sits just below an integer.
func ScalePrice(price float64) int64 {
	return int64(math.Round(price * PriceScale))
}

// DescalePrice is the inverse of ScalePrice.
func DescalePrice(key int64) float64 {
	return float64(key) / PriceScale
}

// Level is one (price, size) pair on a side of the book.
type Level struct {
	Price float64
	Size  float64
}

// OrderBook holds both sides of a single symbol's book as sorted price-level
// maps. It is a pure data structure with no locking; Books serializes access.
type OrderBook struct {
	symbol string
	bids   *btree.Map[int64, float64]
	asks   *btree.Map[int64, float64]
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bids:   btree.NewMap[int64, float64](32),
		asks:   btree.NewMap[int64, float64](32),
	}
}

func (ob *OrderBook) Symbol() string {
	return ob.symbol
}

// Update applies one quote to the book. A positive price upserts the level at
// that price with the quoted size; a size of zero removes the level. At most
// one entry exists per distinct scaled price.
func (ob *OrderBook) Update(bid, bidSize, ask, askSize float64) {
	if bid > 0 {
		upsert(ob.bids, ScalePrice(bid), bidSize)
	}
	if ask > 0 {
		upsert(ob.asks, ScalePrice(ask), askSize)
	}
}

func upsert(side *btree.Map[int64, float64], key int64, size float64) {
	if size == 0 {
		side.Delete(key)
		return
	}
	side.Set(key, size)
}

// BestBid returns the highest bid level, or false when no bids exist.
func (ob *OrderBook) BestBid() (Level, bool) {
	key, size, ok := ob.bids.Max()
	if !ok {
		return Level{}, false
	}
	return Level{Price: DescalePrice(key), Size: size}, true
}

// BestAsk returns the lowest ask level, or false when no asks exist.
func (ob *OrderBook) BestAsk() (Level, bool) {
	key, size, ok := ob.asks.Min()
	if !ok {
		return Level{}, false
	}
	return Level{Price: DescalePrice(key), Size: size}, true
}

// BidCount returns the number of bid levels.
func (ob *OrderBook) BidCount() int {
	return ob.bids.Len()
}

// AskCount returns the number of ask levels.
func (ob *OrderBook) AskCount() int {
	return ob.asks.Len()
}

// Bids returns all bid levels, best (highest) first.
func (ob *OrderBook) Bids() []Level {
	levels := make([]Level, 0, ob.bids.Len())
	ob.bids.Reverse(func(key int64, size float64) bool {
		levels = append(levels, Level{Price: DescalePrice(key), Size: size})
		return true
	})
	return levels
}

// Asks returns all ask levels, best (lowest) first.
func (ob *OrderBook) Asks() []Level {
	levels := make([]Level, 0, ob.asks.Len())
	ob.asks.Scan(func(key int64, size float64) bool {
		levels = append(levels, Level{Price: DescalePrice(key), Size: size})
		return true
	})
	return levels
}
