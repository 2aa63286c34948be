package request

type CreateRateChangeRequest struct {
	EffectiveDate string  `json:"effectiveDate"`
	Rate          float64 `json:"rate"`
}
