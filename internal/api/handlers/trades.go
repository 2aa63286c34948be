package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tradediary/internal/api/request"
	"tradediary/internal/api/response"
	"tradediary/internal/apperrors"
	"tradediary/internal/service"
	"tradediary/internal/validation"
)

// TradeHandler handles HTTP requests for margin-trade endpoints. It is the
// HTTP layer adapter: parse and validate, delegate to the services, respond.
type TradeHandler struct {
	tradeService     *service.TradeService
	analyticsService *service.AnalyticsService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependencies.
func NewTradeHandler(
	tradeService *service.TradeService,
	analyticsService *service.AnalyticsService,
) *TradeHandler {
	return &TradeHandler{
		tradeService:     tradeService,
		analyticsService: analyticsService,
	}
}

// Trades handles GET requests to list trades, optionally scoped to one
// portfolio via the portfolioId query parameter.
//
// Endpoint: GET /api/trade
// Response: 200 OK with array of Trade (closures attached)
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) Trades(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolioId")
	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
			return
		}
	}

	trades, err := h.tradeService.GetTrades(portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// GetTrade handles GET requests to retrieve a single trade by ID.
//
// Endpoint: GET /api/trade/{uuid}
// Response: 200 OK with Trade
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	trade, err := h.tradeService.GetTrade(tradeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrade.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// CreateTrade handles POST requests to open a new margin position.
//
// Endpoint: POST /api/trade
// Request Body: CreateTradeRequest (portfolioId, symbol, entryDate, entryPrice, quantity, marginRate)
// Response: 201 Created with Trade
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.CreateTrade(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// UpdateTrade handles PUT requests to update an existing trade.
//
// Endpoint: PUT /api/trade/{uuid}
// Request Body: UpdateTradeRequest (all fields optional)
// Response: 200 OK with updated Trade
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.UpdateTrade(r.Context(), tradeID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// DeleteTrade handles DELETE requests to remove a trade and its closures.
//
// Endpoint: DELETE /api/trade/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	if err := h.tradeService.DeleteTrade(r.Context(), tradeID); err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// CloseTrade handles POST requests to close part or all of a trade.
//
// Endpoint: POST /api/trade/{uuid}/close
// Request Body: CloseTradeRequest (exitDate, exitPrice, optional quantity)
// Response: 200 OK with updated Trade
// Error: 400 Bad Request on validation failure, an exit date before entry,
// a quantity beyond what is open, or a trade that is already closed
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) CloseTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CloseTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCloseTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.CloseTrade(r.Context(), tradeID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTradeNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrTradeAlreadyClosed),
			errors.Is(err, apperrors.ErrInsufficientQuantity),
			errors.Is(err, apperrors.ErrInvalidDateRange):
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to close trade", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// TradeInterest handles GET requests for the variable-rate interest accrual
// of one trade. The optional asOf query parameter (YYYY-MM-DD) pins the
// computation date; it defaults to today.
//
// Endpoint: GET /api/trade/{uuid}/interest
// Response: 200 OK with the accrual (periods, totals, baseline, savings)
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) TradeInterest(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	asOf, err := asOfDate(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "asOf must be in YYYY-MM-DD format", err.Error())
		return
	}

	accrual, err := h.tradeService.GetTradeInterest(tradeID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to compute interest", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accrual)
}

// DailyInterest handles GET requests for the day-by-day interest schedule.
//
// Endpoint: GET /api/trade/{uuid}/interest/daily
// Response: 200 OK with array of daily charges
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) DailyInterest(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	asOf, err := asOfDate(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "asOf must be in YYYY-MM-DD format", err.Error())
		return
	}

	schedule, err := h.tradeService.GetDailyInterest(tradeID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to compute interest", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, schedule)
}

// ImportTrades handles POST requests to bulk-import trades into a portfolio.
// The batch is applied all-or-nothing.
//
// Endpoint: POST /api/trade/import
// Request Body: ImportTradesRequest (portfolioId + rows)
// Response: 201 Created with the imported trades
// Error: 400 Bad Request if any row fails validation
// Error: 500 Internal Server Error if the insert fails (nothing is kept)
func (h *TradeHandler) ImportTrades(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ImportTradesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateImportTrades(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trades, err := h.tradeService.ImportTrades(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, trades)
}

// AnalyticsSummary handles GET requests for the trade-book dashboard summary.
// Accepts optional portfolioId and asOf query parameters.
//
// Endpoint: GET /api/trade/analytics/summary
// Response: 200 OK with Summary
func (h *TradeHandler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "asOf must be in YYYY-MM-DD format", err.Error())
		return
	}

	summary, err := h.analyticsService.GetSummary(r.URL.Query().Get("portfolioId"), asOf)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// RatesImpact handles GET requests for the floating-rates impact report:
// per open trade, actual interest under the rate timeline versus the
// entry-rate baseline.
//
// Endpoint: GET /api/trade/analytics/rates-impact
// Response: 200 OK with RatesImpactReport
func (h *TradeHandler) RatesImpact(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "asOf must be in YYYY-MM-DD format", err.Error())
		return
	}

	report, err := h.analyticsService.GetRatesImpact(r.URL.Query().Get("portfolioId"), asOf)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// MonthlyAnalytics handles GET requests for the per-month realized-profit
// breakdown. Optional from/to query parameters (YYYY-MM-DD) bound the range;
// it defaults to January 1st of last year through today.
//
// Endpoint: GET /api/trade/analytics/monthly
// Response: 200 OK with array of MonthProfit, ascending by month
// Error: 400 Bad Request if from or to is malformed
func (h *TradeHandler) MonthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := now

	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			response.RespondError(w, http.StatusBadRequest, "from must be in YYYY-MM-DD format", err.Error())
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			response.RespondError(w, http.StatusBadRequest, "to must be in YYYY-MM-DD format", err.Error())
			return
		}
	}

	report, err := h.analyticsService.GetMonthly(r.URL.Query().Get("portfolioId"), from, to)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// SymbolAnalytics handles GET requests for the per-symbol aggregates: trade
// counts and realized profit per symbol, best performer first.
//
// Endpoint: GET /api/trade/analytics/symbols
// Response: 200 OK with array of SymbolStats
func (h *TradeHandler) SymbolAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.GetSymbols(r.URL.Query().Get("portfolioId"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
