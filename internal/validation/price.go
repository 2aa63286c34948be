package validation

import (
	"strings"

	"tradediary/internal/api/request"
)

// ValidateUpsertPrice validates a manual quote upsert.
func ValidateUpsertPrice(ticker string, req request.UpsertPriceRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(ticker) == "" {
		errors["ticker"] = "ticker is required"
	}
	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
