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

// RateChangeHandler handles HTTP requests for the central-bank rate timeline.
type RateChangeHandler struct {
	rateChangeService *service.RateChangeService
}

// NewRateChangeHandler creates a new RateChangeHandler with the provided service dependency.
func NewRateChangeHandler(rateChangeService *service.RateChangeService) *RateChangeHandler {
	return &RateChangeHandler{
		rateChangeService: rateChangeService,
	}
}

// RateChanges handles GET requests to list all rate events, ascending by
// effective date with insertion order preserved on ties.
//
// Endpoint: GET /api/rates
// Response: 200 OK with array of RateChange
// Error: 500 Internal Server Error if retrieval fails
func (h *RateChangeHandler) RateChanges(w http.ResponseWriter, r *http.Request) {
	changes, err := h.rateChangeService.GetRateChanges()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRateChanges.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, changes)
}

// GetRateChange handles GET requests to retrieve a single rate event.
//
// Endpoint: GET /api/rates/{uuid}
// Response: 200 OK with RateChange
// Error: 404 Not Found if the rate event does not exist
func (h *RateChangeHandler) GetRateChange(w http.ResponseWriter, r *http.Request) {
	rateChangeID := chi.URLParam(r, "uuid")

	change, err := h.rateChangeService.GetRateChange(rateChangeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateChangeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRateChangeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRateChanges.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, change)
}

// CreateRateChange handles POST requests to record a rate event. Duplicate
// effective dates are accepted; accrual resolves them to the later insertion.
//
// Endpoint: POST /api/rates
// Request Body: CreateRateChangeRequest (effectiveDate, rate)
// Response: 201 Created with RateChange
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *RateChangeHandler) CreateRateChange(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateRateChangeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRateChange(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	change, err := h.rateChangeService.CreateRateChange(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create rate change", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, change)
}

// DeleteRateChange handles DELETE requests to remove a rate event.
//
// Endpoint: DELETE /api/rates/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the rate event does not exist
func (h *RateChangeHandler) DeleteRateChange(w http.ResponseWriter, r *http.Request) {
	rateChangeID := chi.URLParam(r, "uuid")

	if err := h.rateChangeService.DeleteRateChange(r.Context(), rateChangeID); err != nil {
		if errors.Is(err, apperrors.ErrRateChangeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRateChangeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete rate change", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
