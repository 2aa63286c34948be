package model

// Portfolio represents a portfolio from the database. A portfolio scopes both
// margin trades and spot transactions and carries the display currency.
type Portfolio struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	IsArchived  bool   `json:"isArchived"`
}

// PortfolioFilter for querying portfolios
type PortfolioFilter struct {
	IncludeArchived bool
}
