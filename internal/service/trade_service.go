package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradediary/internal/api/request"
	"tradediary/internal/apperrors"
	"tradediary/internal/interest"
	"tradediary/internal/model"
	"tradediary/internal/repository"
)

// closeEpsilon absorbs float drift when deciding whether a partial close
// exhausted the trade.
const closeEpsilon = 1e-9

// TradeService handles margin-trade business logic: lifecycle, full and
// partial closes, bulk import, and the interest accrual views.
type TradeService struct {
	tradeRepo         *repository.TradeRepository
	rateChangeService *RateChangeService
}

// NewTradeService creates a new TradeService with the provided dependencies.
func NewTradeService(
	tradeRepo *repository.TradeRepository,
	rateChangeService *RateChangeService,
) *TradeService {
	return &TradeService{
		tradeRepo:         tradeRepo,
		rateChangeService: rateChangeService,
	}
}

// GetTrades retrieves trades, scoped to a portfolio when portfolioID is
// non-empty. Closures come attached.
func (s *TradeService) GetTrades(portfolioID string) ([]model.Trade, error) {
	return s.tradeRepo.GetTrades(portfolioID)
}

// GetTrade retrieves a single trade with its closures.
func (s *TradeService) GetTrade(tradeID string) (model.Trade, error) {
	return s.tradeRepo.GetTrade(tradeID)
}

// CreateTrade opens a new margin position.
func (s *TradeService) CreateTrade(ctx context.Context, req request.CreateTradeRequest) (*model.Trade, error) {
	trade, err := tradeFromRequest(req, req.PortfolioID)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.InsertTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	return trade, nil
}

// UpdateTrade applies the non-nil fields of the request to an existing trade.
// Exit fields are managed through CloseTrade, not here.
func (s *TradeService) UpdateTrade(ctx context.Context, tradeID string, req request.UpdateTradeRequest) (*model.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return nil, err
	}

	if req.Symbol != nil {
		trade.Symbol = *req.Symbol
	}
	if req.EntryDate != nil {
		entryDate, err := parseDate(*req.EntryDate)
		if err != nil {
			return nil, err
		}
		trade.EntryDate = entryDate
	}
	if req.EntryPrice != nil {
		trade.EntryPrice = *req.EntryPrice
	}
	if req.Quantity != nil {
		trade.Quantity = *req.Quantity
	}
	if req.MarginRate != nil {
		trade.MarginRate = *req.MarginRate
	}
	if req.Notes != nil {
		trade.Notes = *req.Notes
	}

	if err := s.tradeRepo.UpdateTrade(ctx, &trade); err != nil {
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}

	return &trade, nil
}

// DeleteTrade removes a trade and its closures.
func (s *TradeService) DeleteTrade(ctx context.Context, tradeID string) error {
	return s.tradeRepo.DeleteTrade(ctx, tradeID)
}

// CloseTrade records a full or partial close. A request quantity of zero
// means "everything still open". When the closed quantity exhausts the trade,
// the trade's exit date and price are stamped and interest accrual freezes at
// that date.
func (s *TradeService) CloseTrade(ctx context.Context, tradeID string, req request.CloseTradeRequest) (*model.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return nil, err
	}

	open := trade.OpenQuantity()
	if trade.ExitDate != nil || open <= 0 {
		return nil, apperrors.ErrTradeAlreadyClosed
	}

	exitDate, err := parseDate(req.ExitDate)
	if err != nil {
		return nil, err
	}
	if exitDate.Before(trade.EntryDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = open
	}
	if quantity > open+closeEpsilon {
		return nil, apperrors.ErrInsufficientQuantity
	}

	closure := &model.TradeClosure{
		ID:             uuid.New().String(),
		TradeID:        trade.ID,
		ClosedQuantity: quantity,
		ExitPrice:      req.ExitPrice,
		ExitDate:       exitDate,
		Notes:          req.Notes,
	}
	if err := s.tradeRepo.InsertClosure(ctx, closure); err != nil {
		return nil, fmt.Errorf("failed to close trade: %w", err)
	}
	trade.Closures = append(trade.Closures, *closure)

	if trade.OpenQuantity() <= closeEpsilon {
		trade.ExitDate = &exitDate
		trade.ExitPrice = &req.ExitPrice
		if err := s.tradeRepo.UpdateTrade(ctx, &trade); err != nil {
			return nil, fmt.Errorf("failed to finalize trade close: %w", err)
		}
	}

	return &trade, nil
}

// ImportTrades inserts a batch of trades all-or-nothing: one malformed row or
// failed insert rolls back the entire batch.
func (s *TradeService) ImportTrades(ctx context.Context, req request.ImportTradesRequest) ([]model.Trade, error) {
	trades := make([]*model.Trade, 0, len(req.Trades))
	for i, row := range req.Trades {
		trade, err := tradeFromRequest(row, req.PortfolioID)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", apperrors.ErrFailedToImportTrades, i+1, err)
		}
		trades = append(trades, trade)
	}

	if err := s.tradeRepo.InsertTrades(ctx, trades); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToImportTrades, err)
	}

	imported := make([]model.Trade, 0, len(trades))
	for _, t := range trades {
		imported = append(imported, *t)
	}
	return imported, nil
}

// GetTradeInterest computes the variable-rate interest accrual for one trade
// as of the given date, using the stored rate timeline.
func (s *TradeService) GetTradeInterest(tradeID string, asOf time.Time) (interest.Accrual, error) {
	pos, changes, err := s.accrualInput(tradeID)
	if err != nil {
		return interest.Accrual{}, err
	}
	return interest.Compute(pos, changes, asOf), nil
}

// GetDailyInterest expands the accrual into one charge per calendar day.
func (s *TradeService) GetDailyInterest(tradeID string, asOf time.Time) ([]interest.DailyCharge, error) {
	pos, changes, err := s.accrualInput(tradeID)
	if err != nil {
		return nil, err
	}
	return interest.DailySchedule(pos, changes, asOf), nil
}

func (s *TradeService) accrualInput(tradeID string) (interest.Position, []interest.RateChange, error) {
	trade, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return interest.Position{}, nil, err
	}

	changes, err := s.rateChangeService.Timeline()
	if err != nil {
		return interest.Position{}, nil, err
	}

	return accrualPosition(trade), changes, nil
}

// accrualPosition adapts a stored trade to the accrual engine's input shape.
func accrualPosition(trade model.Trade) interest.Position {
	return interest.Position{
		EntryDate:  trade.EntryDate,
		EntryPrice: trade.EntryPrice,
		Quantity:   trade.Quantity,
		AnnualRate: trade.MarginRate,
		ExitDate:   trade.ExitDate,
	}
}

func tradeFromRequest(req request.CreateTradeRequest, portfolioID string) (*model.Trade, error) {
	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	return &model.Trade{
		ID:          uuid.New().String(),
		PortfolioID: portfolioID,
		Symbol:      req.Symbol,
		EntryDate:   entryDate,
		EntryPrice:  req.EntryPrice,
		Quantity:    req.Quantity,
		MarginRate:  req.MarginRate,
		Notes:       req.Notes,
	}, nil
}
