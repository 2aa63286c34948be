package request

type CreateTradeRequest struct {
	PortfolioID string  `json:"portfolioId"`
	Symbol      string  `json:"symbol"`
	EntryDate   string  `json:"entryDate"`
	EntryPrice  float64 `json:"entryPrice"`
	Quantity    float64 `json:"quantity"`
	MarginRate  float64 `json:"marginRate"`
	Notes       string  `json:"notes,omitempty"`
}

type UpdateTradeRequest struct {
	Symbol     *string  `json:"symbol,omitempty"`
	EntryDate  *string  `json:"entryDate,omitempty"`
	EntryPrice *float64 `json:"entryPrice,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	MarginRate *float64 `json:"marginRate,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// CloseTradeRequest closes part or all of a trade. Quantity 0 means
// "everything still open".
type CloseTradeRequest struct {
	ExitDate  string  `json:"exitDate"`
	ExitPrice float64 `json:"exitPrice"`
	Quantity  float64 `json:"quantity,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// ImportTradesRequest is the bulk-import payload: one row per trade, applied
// all-or-nothing.
type ImportTradesRequest struct {
	PortfolioID string               `json:"portfolioId"`
	Trades      []CreateTradeRequest `json:"trades"`
}
