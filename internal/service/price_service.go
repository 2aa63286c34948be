package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tradediary/internal/model"
	"tradediary/internal/quotes"
	"tradediary/internal/repository"
)

// maxConcurrentQuoteFetches bounds the fan-out against the quote feed during
// a refresh run.
const maxConcurrentQuoteFetches = 4

// PriceService maintains the latest-known quote per ticker. Quotes arrive
// either from manual upserts or from the scheduled feed refresh.
type PriceService struct {
	priceRepo *repository.PriceRepository
	spotRepo  *repository.SpotRepository
	quotes    quotes.Client
}

// NewPriceService creates a new PriceService. client may be nil when no quote
// feed is configured; refresh then reports an error instead of fetching.
func NewPriceService(
	priceRepo *repository.PriceRepository,
	spotRepo *repository.SpotRepository,
	client quotes.Client,
) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
		spotRepo:  spotRepo,
		quotes:    client,
	}
}

// GetPrices retrieves all stored quotes.
func (s *PriceService) GetPrices() ([]model.StockPrice, error) {
	return s.priceRepo.GetPrices()
}

// GetPrice retrieves the stored quote for one ticker.
func (s *PriceService) GetPrice(ticker string) (model.StockPrice, error) {
	return s.priceRepo.GetPrice(ticker)
}

// GetQuoteMap returns the ticker-to-price map consumed by the P&L engine.
func (s *PriceService) GetQuoteMap() (map[string]float64, error) {
	return s.priceRepo.GetQuoteMap()
}

// UpsertPrice records a manually supplied quote for a ticker.
func (s *PriceService) UpsertPrice(ctx context.Context, ticker string, price float64) (*model.StockPrice, error) {
	record := &model.StockPrice{
		ID:        uuid.New().String(),
		Ticker:    ticker,
		Price:     price,
		UpdatedAt: time.Now(),
	}

	if err := s.priceRepo.UpsertPrice(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert price for %s: %w", ticker, err)
	}

	return record, nil
}

// RefreshAll fetches a fresh quote for every ticker that appears in spot
// transactions and upserts the results. Fetches run concurrently with a
// bounded fan-out; a single failing ticker is logged and skipped rather than
// aborting the run. Returns the number of tickers updated.
func (s *PriceService) RefreshAll(ctx context.Context) (int, error) {
	if s.quotes == nil {
		return 0, fmt.Errorf("no quote feed configured")
	}

	tickers, err := s.spotRepo.GetTickers()
	if err != nil {
		return 0, fmt.Errorf("failed to list tickers: %w", err)
	}

	var (
		mu      sync.Mutex
		updated int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuoteFetches)

	for _, ticker := range tickers {
		g.Go(func() error {
			price, err := s.quotes.GetQuote(gctx, ticker)
			if err != nil {
				log.Printf("quote refresh: %s skipped: %v", ticker, err)
				return nil
			}
			if _, err := s.UpsertPrice(gctx, ticker, price); err != nil {
				return err
			}
			mu.Lock()
			updated++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return updated, err
	}
	return updated, nil
}
