package validation

import (
	"fmt"
	"strings"

	"tradediary/internal/api/request"
)

// ValidTransactionType contains the allowed spot transaction type values.
var ValidTransactionType = map[string]bool{
	"BUY": true, "SELL": true, "DEPOSIT": true, "WITHDRAW": true, "DIVIDEND": true,
}

// ValidateCreateSpotTransaction validates a spot transaction creation request.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - ticker: Non-empty
//   - type: Must be one of: BUY, SELL, DEPOSIT, WITHDRAW, DIVIDEND
//   - date: Must be in YYYY-MM-DD format
//   - price: Must be positive
//   - quantity: Must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateSpotTransaction(req request.CreateSpotTransactionRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	checkDate(errors, "date", req.Date)

	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}
	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateSpotTransaction validates a spot transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateSpotTransaction(req request.UpdateSpotTransactionRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil && strings.TrimSpace(*req.Ticker) == "" {
		errors["ticker"] = "ticker cannot be empty"
	}
	if req.Type != nil && !ValidTransactionType[*req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
	}
	if req.Date != nil {
		checkDate(errors, "date", *req.Date)
	}
	if req.Price != nil && *req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}
	if req.Quantity != nil && *req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
