package models

import "time"

// PriceHistory is an ordered, chronological price series for one coin.
// Timestamps and Prices are parallel slices; immutable once fetched.
type PriceHistory struct {
	CoinID     string      `json:"coinId"`
	Timestamps []time.Time `json:"timestamps"`
	Prices     []float64   `json:"prices"`
}

// PriceHistorySummary are the numbers shown alongside the history graph
type PriceHistorySummary struct {
	CoinID     string    `json:"coinId"`
	Points     int       `json:"points"`
	MinPrice   float64   `json:"minPrice"`
	MaxPrice   float64   `json:"maxPrice"`
	MeanPrice  float64   `json:"meanPrice"`
	MinPriceAt time.Time `json:"minPriceAt"`
	MaxPriceAt time.Time `json:"maxPriceAt"`
}
