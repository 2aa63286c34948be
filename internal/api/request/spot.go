package request

type CreateSpotTransactionRequest struct {
	PortfolioID string  `json:"portfolioId"`
	Ticker      string  `json:"ticker"`
	Company     string  `json:"company,omitempty"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	Note        string  `json:"note,omitempty"`
}

type UpdateSpotTransactionRequest struct {
	Ticker   *string  `json:"ticker,omitempty"`
	Company  *string  `json:"company,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Note     *string  `json:"note,omitempty"`
}
