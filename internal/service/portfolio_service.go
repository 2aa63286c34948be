package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradediary/internal/api/request"
	"tradediary/internal/model"
	"tradediary/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
// Portfolios scope both margin trades and spot transactions.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(portfolioRepo *repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
	}
}

// GetPortfolios retrieves portfolios, optionally including archived ones.
func (s *PortfolioService) GetPortfolios(includeArchived bool) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(model.PortfolioFilter{
		IncludeArchived: includeArchived,
	})
}

// GetPortfolio retrieves a single portfolio by its ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolio(portfolioID)
}

// CreatePortfolio creates a new portfolio. Currency defaults to USD when the
// request leaves it empty.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	portfolio := &model.Portfolio{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Currency:    currency,
	}

	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

// UpdatePortfolio applies the non-nil fields of the request to an existing
// portfolio and persists the result.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, req request.UpdatePortfolioRequest) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(portfolioID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}
	if req.Currency != nil {
		portfolio.Currency = *req.Currency
	}
	if req.IsArchived != nil {
		portfolio.IsArchived = *req.IsArchived
	}

	if err := s.portfolioRepo.UpdatePortfolio(ctx, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	return &portfolio, nil
}

// DeletePortfolio removes a portfolio and, through foreign keys, its trades
// and transactions.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(ctx, portfolioID)
}

// parseDate is the shared date parser for request payloads.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
