package model

import "time"

// StockPrice is the latest known quote for one ticker. Prices arrive either
// from the scheduled quote refresh or from a manual upsert.
type StockPrice struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updatedAt"`
}
