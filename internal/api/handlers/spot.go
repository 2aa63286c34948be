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

// SpotHandler handles HTTP requests for spot transactions and the
// FIFO-derived views built on top of them.
type SpotHandler struct {
	spotService *service.SpotService
}

// NewSpotHandler creates a new SpotHandler with the provided service dependency.
func NewSpotHandler(spotService *service.SpotService) *SpotHandler {
	return &SpotHandler{
		spotService: spotService,
	}
}

// Transactions handles GET requests to list spot transactions. Optional
// portfolioId, ticker and type query parameters narrow the result.
//
// Endpoint: GET /api/spot
// Response: 200 OK with array of SpotTransaction
// Error: 500 Internal Server Error if retrieval fails
func (h *SpotHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolioId")
	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
			return
		}
	}

	transactions, err := h.spotService.GetTransactions(
		portfolioID,
		r.URL.Query().Get("ticker"),
		r.URL.Query().Get("type"),
	)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single spot transaction.
//
// Endpoint: GET /api/spot/{uuid}
// Response: 200 OK with SpotTransaction
// Error: 404 Not Found if the transaction does not exist
func (h *SpotHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.spotService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to record a spot transaction.
//
// Endpoint: POST /api/spot
// Request Body: CreateSpotTransactionRequest
// Response: 201 Created with SpotTransaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *SpotHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSpotTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSpotTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.spotService.CreateTransaction(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update a spot transaction.
//
// Endpoint: PUT /api/spot/{uuid}
// Request Body: UpdateSpotTransactionRequest (all fields optional)
// Response: 200 OK with updated SpotTransaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the transaction does not exist
func (h *SpotHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateSpotTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSpotTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.spotService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a spot transaction.
//
// Endpoint: DELETE /api/spot/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the transaction does not exist
func (h *SpotHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	if err := h.spotService.DeleteTransaction(r.Context(), transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Positions handles GET requests for the FIFO cost-basis snapshot: one
// position per ticker with its remaining lots and P&L, plus totals.
//
// Endpoint: GET /api/spot/positions
// Response: 200 OK with the full analysis result
// Error: 500 Internal Server Error if the computation fails
func (h *SpotHandler) Positions(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.spotService.GetAnalysis(r.URL.Query().Get("portfolioId"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, analysis)
}

// Sales handles GET requests for the realized-sales ledger.
//
// Endpoint: GET /api/spot/sales
// Response: 200 OK with array of RealizedSale, oldest first
func (h *SpotHandler) Sales(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.spotService.GetAnalysis(r.URL.Query().Get("portfolioId"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, analysis.Sales)
}

// Cash handles GET requests for the cash balance view.
//
// Endpoint: GET /api/spot/cash
// Response: 200 OK with CashSummary
func (h *SpotHandler) Cash(w http.ResponseWriter, r *http.Request) {
	cash, err := h.spotService.GetCash(r.URL.Query().Get("portfolioId"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cash)
}

// Statistics handles GET requests for transaction-activity statistics.
//
// Endpoint: GET /api/spot/statistics
// Response: 200 OK with SpotStatistics
func (h *SpotHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.spotService.GetStatistics(r.URL.Query().Get("portfolioId"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}
