package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradediary/internal/api/request"
	"tradediary/internal/fifo"
	"tradediary/internal/model"
	"tradediary/internal/repository"
)

// SpotService handles spot-transaction business logic and the FIFO-derived
// views: open positions, realized sales, cash balance, and statistics.
type SpotService struct {
	spotRepo  *repository.SpotRepository
	priceRepo *repository.PriceRepository
}

// NewSpotService creates a new SpotService with the provided repository dependencies.
func NewSpotService(
	spotRepo *repository.SpotRepository,
	priceRepo *repository.PriceRepository,
) *SpotService {
	return &SpotService{
		spotRepo:  spotRepo,
		priceRepo: priceRepo,
	}
}

// SpotStatistics summarizes transaction activity plus the resulting cash
// balance.
type SpotStatistics struct {
	TransactionCount int              `json:"transactionCount"`
	CountByType      map[string]int   `json:"countByType"`
	Cash             fifo.CashSummary `json:"cash"`
}

// GetTransactions retrieves spot transactions with optional portfolio, ticker
// and type filters.
func (s *SpotService) GetTransactions(portfolioID, ticker, txType string) ([]model.SpotTransaction, error) {
	return s.spotRepo.GetTransactions(portfolioID, ticker, txType)
}

// GetTransaction retrieves a single spot transaction by its ID.
func (s *SpotService) GetTransaction(transactionID string) (model.SpotTransaction, error) {
	return s.spotRepo.GetTransaction(transactionID)
}

// CreateTransaction records a new spot transaction.
func (s *SpotService) CreateTransaction(ctx context.Context, req request.CreateSpotTransactionRequest) (*model.SpotTransaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx := &model.SpotTransaction{
		ID:          uuid.New().String(),
		PortfolioID: req.PortfolioID,
		Ticker:      req.Ticker,
		Company:     req.Company,
		Type:        req.Type,
		Date:        date,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Note:        req.Note,
	}

	if err := s.spotRepo.InsertTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// UpdateTransaction applies the non-nil fields of the request to an existing
// transaction.
func (s *SpotService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateSpotTransactionRequest) (*model.SpotTransaction, error) {
	tx, err := s.spotRepo.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	if req.Ticker != nil {
		tx.Ticker = *req.Ticker
	}
	if req.Company != nil {
		tx.Company = *req.Company
	}
	if req.Type != nil {
		tx.Type = *req.Type
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		tx.Date = date
	}
	if req.Price != nil {
		tx.Price = *req.Price
	}
	if req.Quantity != nil {
		tx.Quantity = *req.Quantity
	}
	if req.Note != nil {
		tx.Note = *req.Note
	}

	if err := s.spotRepo.UpdateTransaction(ctx, &tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &tx, nil
}

// DeleteTransaction removes a spot transaction.
func (s *SpotService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.spotRepo.DeleteTransaction(ctx, transactionID)
}

// GetAnalysis recomputes the FIFO cost-basis snapshot from the full
// transaction history, priced with the stored quote map. Every call is a
// fresh computation; nothing incremental is kept between requests.
func (s *SpotService) GetAnalysis(portfolioID string) (fifo.Result, error) {
	txs, err := s.spotRepo.GetTransactions(portfolioID, "", "")
	if err != nil {
		return fifo.Result{}, err
	}

	quotes, err := s.priceRepo.GetQuoteMap()
	if err != nil {
		return fifo.Result{}, err
	}

	return fifo.Compute(engineTransactions(txs), quotes), nil
}

// GetCash folds the transaction history into cash movement totals.
func (s *SpotService) GetCash(portfolioID string) (fifo.CashSummary, error) {
	txs, err := s.spotRepo.GetTransactions(portfolioID, "", "")
	if err != nil {
		return fifo.CashSummary{}, err
	}
	return fifo.CashBalance(engineTransactions(txs)), nil
}

// GetStatistics reports per-type transaction counts alongside the cash
// summary.
func (s *SpotService) GetStatistics(portfolioID string) (SpotStatistics, error) {
	txs, err := s.spotRepo.GetTransactions(portfolioID, "", "")
	if err != nil {
		return SpotStatistics{}, err
	}

	stats := SpotStatistics{
		TransactionCount: len(txs),
		CountByType:      make(map[string]int),
		Cash:             fifo.CashBalance(engineTransactions(txs)),
	}
	for _, tx := range txs {
		stats.CountByType[tx.Type]++
	}
	return stats, nil
}

// engineTransactions adapts stored transactions to the P&L engine's input
// shape.
func engineTransactions(txs []model.SpotTransaction) []fifo.Transaction {
	out := make([]fifo.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, fifo.Transaction{
			Ticker:   tx.Ticker,
			Type:     fifo.TxType(tx.Type),
			Date:     tx.Date,
			Price:    tx.Price,
			Quantity: tx.Quantity,
		})
	}
	return out
}
