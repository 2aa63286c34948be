package request

type UpsertPriceRequest struct {
	Price float64 `json:"price"`
}
