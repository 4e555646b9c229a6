package domain

// Quote is a single venue's best-bid/best-ask snapshot for one symbol at one
// instant. Quotes are immutable values; duplicates are valid and represent
// repeated ticks.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	BidSize   float64 `json:"bid_size"`
	AskSize   float64 `json:"ask_size"`
	Venue     string  `json:"venue"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
}
