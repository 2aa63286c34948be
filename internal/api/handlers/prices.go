package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradediary/internal/api/request"
	"tradediary/internal/api/response"
	"tradediary/internal/apperrors"
	"tradediary/internal/service"
	"tradediary/internal/validation"
)

// PriceHandler handles HTTP requests for the stock-price board.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Prices handles GET requests to list all stored quotes.
//
// Endpoint: GET /api/prices
// Response: 200 OK with array of StockPrice
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) Prices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.priceService.GetPrices()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// GetPrice handles GET requests to retrieve the stored quote for one ticker.
//
// Endpoint: GET /api/prices/{ticker}
// Response: 200 OK with StockPrice
// Error: 404 Not Found if no quote is stored for the ticker
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	price, err := h.priceService.GetPrice(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrPriceNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPriceNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, price)
}

// UpsertPrice handles PUT requests to manually set the quote for a ticker.
//
// Endpoint: PUT /api/prices/{ticker}
// Request Body: UpsertPriceRequest (price)
// Response: 200 OK with the stored StockPrice
// Error: 400 Bad Request if validation fails
func (h *PriceHandler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.UpsertPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertPrice(ticker, req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	price, err := h.priceService.UpsertPrice(r.Context(), ticker, req.Price)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to upsert price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, price)
}

// RefreshResponse reports how many tickers a refresh run updated.
type RefreshResponse struct {
	Updated int `json:"updated"`
}

// RefreshPrices handles POST requests to trigger a quote refresh immediately
// instead of waiting for the scheduled run.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with RefreshResponse
// Error: 500 Internal Server Error if the refresh fails or no feed is configured
func (h *PriceHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	updated, err := h.priceService.RefreshAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshResponse{Updated: updated})
}
