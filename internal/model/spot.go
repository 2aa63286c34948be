package model

import "time"

// SpotTransaction represents a spot-market transaction for a portfolio.
// Type is one of BUY, SELL, DEPOSIT, WITHDRAW, DIVIDEND.
type SpotTransaction struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	Ticker      string    `json:"ticker"`
	Company     string    `json:"company,omitempty"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Quantity    float64   `json:"quantity"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Amount returns the cash value of the transaction.
func (t SpotTransaction) Amount() float64 {
	return t.Price * t.Quantity
}
