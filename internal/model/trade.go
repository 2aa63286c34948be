package model

import "time"

// Trade represents a margin position: shares bought on credit at an annual
// margin rate. ExitDate/ExitPrice stay nil while the position is open.
type Trade struct {
	ID          string         `json:"id"`
	PortfolioID string         `json:"portfolioId"`
	Symbol      string         `json:"symbol"`
	EntryDate   time.Time      `json:"entryDate"`
	EntryPrice  float64        `json:"entryPrice"`
	Quantity    float64        `json:"quantity"`
	MarginRate  float64        `json:"marginRate"` // annual percent in force at entry
	ExitDate    *time.Time     `json:"exitDate,omitempty"`
	ExitPrice   *float64       `json:"exitPrice,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Closures    []TradeClosure `json:"closures,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
}

// TotalCost returns the position's cost basis (entry price * quantity).
func (t Trade) TotalCost() float64 {
	return t.EntryPrice * t.Quantity
}

// OpenQuantity returns the shares not yet closed by partial closures.
func (t Trade) OpenQuantity() float64 {
	open := t.Quantity
	for _, c := range t.Closures {
		open -= c.ClosedQuantity
	}
	if open < 0 {
		return 0
	}
	return open
}

// TradeClosure records a full or partial close of a margin trade.
type TradeClosure struct {
	ID             string    `json:"id"`
	TradeID        string    `json:"tradeId"`
	ClosedQuantity float64   `json:"closedQuantity"`
	ExitPrice      float64   `json:"exitPrice"`
	ExitDate       time.Time `json:"exitDate"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Proceeds returns the cash received for the closed quantity.
func (c TradeClosure) Proceeds() float64 {
	return c.ExitPrice * c.ClosedQuantity
}
