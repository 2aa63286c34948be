package validation

import (
	"strings"

	"tradediary/internal/api/request"
)

// ValidateCreateTrade validates a trade creation request.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - symbol: Non-empty
//   - entryDate: Must be in YYYY-MM-DD format
//   - entryPrice: Must be positive
//   - quantity: Must be positive
//   - marginRate: Must not be negative (a zero-interest position is allowed)
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)
	validateTradeFields(errors, req)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateTrade validates a trade update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTrade(req request.UpdateTradeRequest) error {
	errors := make(map[string]string)

	if req.Symbol != nil && strings.TrimSpace(*req.Symbol) == "" {
		errors["symbol"] = "symbol cannot be empty"
	}
	if req.EntryDate != nil {
		checkDate(errors, "entryDate", *req.EntryDate)
	}
	if req.EntryPrice != nil && *req.EntryPrice <= 0.0 {
		errors["entryPrice"] = "entryPrice must be positive"
	}
	if req.Quantity != nil && *req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.MarginRate != nil && *req.MarginRate < 0.0 {
		errors["marginRate"] = "marginRate cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCloseTrade validates a full or partial close request. Quantity zero
// is allowed and means "close everything still open".
func ValidateCloseTrade(req request.CloseTradeRequest) error {
	errors := make(map[string]string)

	checkDate(errors, "exitDate", req.ExitDate)

	if req.ExitPrice <= 0.0 {
		errors["exitPrice"] = "exitPrice must be positive"
	}
	if req.Quantity < 0.0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateImportTrades validates a bulk import payload. Every row must pass
// the create checks; the first failing row is reported.
func ValidateImportTrades(req request.ImportTradesRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}
	if len(req.Trades) == 0 {
		return ErrEmptySlice
	}

	for _, row := range req.Trades {
		errors := make(map[string]string)
		validateTradeFields(errors, row)
		if len(errors) > 0 {
			return &Error{Fields: errors}
		}
	}
	return nil
}

func validateTradeFields(errors map[string]string, req request.CreateTradeRequest) {
	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	checkDate(errors, "entryDate", req.EntryDate)

	if req.EntryPrice <= 0.0 {
		errors["entryPrice"] = "entryPrice must be positive"
	}
	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.MarginRate < 0.0 {
		errors["marginRate"] = "marginRate cannot be negative"
	}
}
