package domain

type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

// Order is a request to trade on a venue. The execution path only carries
// orders to the venue adapter; routing and risk checks live outside this
// module.
type Order struct {
	Symbol   string    `json:"symbol"`
	Side     OrderSide `json:"side"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Venue    string    `json:"venue"`
	Type     OrderType `json:"type"`
}
