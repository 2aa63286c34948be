package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrTradeNotFound indicates that a margin trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrTransactionNotFound indicates that a spot transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrRateChangeNotFound indicates that a rate-change event with the given ID does not exist.
	ErrRateChangeNotFound = errors.New("rate change not found")

	// ErrPriceNotFound indicates no stored quote for the given ticker.
	ErrPriceNotFound = errors.New("price not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrTradeAlreadyClosed indicates that a close was requested for a trade
	// whose full quantity has already been closed.
	ErrTradeAlreadyClosed = errors.New("trade already closed")

	// ErrInsufficientQuantity indicates that a partial close asked for more
	// shares than the trade still has open.
	ErrInsufficientQuantity = errors.New("insufficient open quantity")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., exit date before entry date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a missing, malformed, or expired auth token.
	ErrInvalidToken = errors.New("invalid token")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveTrades       = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveTrade        = errors.New("failed to retrieve trade")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveRateChanges  = errors.New("failed to retrieve rate changes")
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve prices")
	ErrFailedToComputeAnalytics     = errors.New("failed to compute analytics")
	ErrFailedToImportTrades         = errors.New("failed to import trades")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)
