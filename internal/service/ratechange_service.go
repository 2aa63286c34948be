package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradediary/internal/api/request"
	"tradediary/internal/interest"
	"tradediary/internal/model"
	"tradediary/internal/repository"
)

// RateChangeService manages the central-bank rate timeline applied to all
// open margin trades.
type RateChangeService struct {
	rateChangeRepo *repository.RateChangeRepository
}

// NewRateChangeService creates a new RateChangeService with the provided repository dependencies.
func NewRateChangeService(rateChangeRepo *repository.RateChangeRepository) *RateChangeService {
	return &RateChangeService{
		rateChangeRepo: rateChangeRepo,
	}
}

// GetRateChanges retrieves the full rate timeline, ordered by effective date
// and then insertion order.
func (s *RateChangeService) GetRateChanges() ([]model.RateChange, error) {
	return s.rateChangeRepo.GetRateChanges()
}

// GetRateChange retrieves a single rate-change event by its ID.
func (s *RateChangeService) GetRateChange(rateChangeID string) (model.RateChange, error) {
	return s.rateChangeRepo.GetRateChange(rateChangeID)
}

// CreateRateChange records a new rate event. Duplicate effective dates are
// allowed; the later insertion wins during accrual.
func (s *RateChangeService) CreateRateChange(ctx context.Context, req request.CreateRateChangeRequest) (*model.RateChange, error) {
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	change := &model.RateChange{
		ID:            uuid.New().String(),
		EffectiveDate: effectiveDate,
		Rate:          req.Rate,
	}

	if err := s.rateChangeRepo.InsertRateChange(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to create rate change: %w", err)
	}

	return change, nil
}

// DeleteRateChange removes a rate event from the timeline.
func (s *RateChangeService) DeleteRateChange(ctx context.Context, rateChangeID string) error {
	return s.rateChangeRepo.DeleteRateChange(ctx, rateChangeID)
}

// Timeline loads the stored rate events as accrual-engine input. The
// repository already orders by effective date and insertion time, so the
// engine's stable sort preserves the last-inserted-wins tie-break.
func (s *RateChangeService) Timeline() ([]interest.RateChange, error) {
	stored, err := s.rateChangeRepo.GetRateChanges()
	if err != nil {
		return nil, err
	}

	changes := make([]interest.RateChange, 0, len(stored))
	for _, c := range stored {
		changes = append(changes, interest.RateChange{
			EffectiveDate: c.EffectiveDate,
			Rate:          c.Rate,
		})
	}
	return changes, nil
}
