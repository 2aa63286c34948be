// Package jobs holds the scheduled background tasks.
package jobs

import (
	"context"
	"log"
	"time"

	"tradediary/internal/service"
)

// refreshTimeout caps one full refresh run.
const refreshTimeout = 2 * time.Minute

// PriceRefreshJob periodically pulls fresh quotes for every traded ticker.
type PriceRefreshJob struct {
	priceService *service.PriceService
}

// NewPriceRefreshJob creates the quote refresh job.
func NewPriceRefreshJob(priceService *service.PriceService) *PriceRefreshJob {
	return &PriceRefreshJob{priceService: priceService}
}

// Name identifies the job in scheduler logs.
func (j *PriceRefreshJob) Name() string {
	return "price-refresh"
}

// Run refreshes all quotes once.
func (j *PriceRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	updated, err := j.priceService.RefreshAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("price refresh: %d tickers updated", updated)
	return nil
}
