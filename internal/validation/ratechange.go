package validation

import (
	"tradediary/internal/api/request"
)

// ValidateCreateRateChange validates a rate-change creation request. A rate
// of zero is allowed; duplicate effective dates are allowed and resolve to
// the later insertion during accrual.
func ValidateCreateRateChange(req request.CreateRateChangeRequest) error {
	errors := make(map[string]string)

	checkDate(errors, "effectiveDate", req.EffectiveDate)

	if req.Rate < 0.0 {
		errors["rate"] = "rate cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
