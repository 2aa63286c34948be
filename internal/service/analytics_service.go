package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"tradediary/internal/apperrors"
	"tradediary/internal/interest"
	"tradediary/internal/repository"
)

// AnalyticsService computes aggregate views over the margin-trade book:
// the summary dashboard, the floating-rates impact report, and the
// monthly and per-symbol realized-profit breakdowns.
type AnalyticsService struct {
	tradeRepo         *repository.TradeRepository
	rateChangeService *RateChangeService
}

// NewAnalyticsService creates a new AnalyticsService with the provided dependencies.
func NewAnalyticsService(
	tradeRepo *repository.TradeRepository,
	rateChangeService *RateChangeService,
) *AnalyticsService {
	return &AnalyticsService{
		tradeRepo:         tradeRepo,
		rateChangeService: rateChangeService,
	}
}

// Summary aggregates the trade book as of one date. WinRate is the share of
// closed trades whose price P&L came out positive, as a percentage.
type Summary struct {
	OpenTrades          int     `json:"openTrades"`
	ClosedTrades        int     `json:"closedTrades"`
	WinningTrades       int     `json:"winningTrades"`
	WinRate             float64 `json:"winRate"`
	OpenCostBasis       float64 `json:"openCostBasis"`
	WeightedAverageRate float64 `json:"weightedAverageRate"`
	DailyInterest       float64 `json:"dailyInterest"`
	AccruedInterest     float64 `json:"accruedInterest"`
	RealizedProfit      float64 `json:"realizedProfit"`
}

// MonthProfit is one month's realized price P&L. Month is formatted YYYY-MM.
type MonthProfit struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
}

// SymbolStats aggregates one symbol's trade count and realized price P&L.
type SymbolStats struct {
	Symbol string  `json:"symbol"`
	Trades int     `json:"trades"`
	Profit float64 `json:"profit"`
}

// TradeImpact compares one open trade's actual interest against what it
// would have cost at its entry rate.
type TradeImpact struct {
	TradeID          string  `json:"tradeId"`
	Symbol           string  `json:"symbol"`
	EntryRate        float64 `json:"entryRate"`
	CurrentRate      float64 `json:"currentRate"`
	ActualInterest   float64 `json:"actualInterest"`
	BaselineInterest float64 `json:"baselineInterest"`
	Savings          float64 `json:"savings"`
}

// RatesImpactReport is the floating-rates impact view across all open trades.
type RatesImpactReport struct {
	Trades           []TradeImpact `json:"trades"`
	ActualInterest   float64       `json:"actualInterest"`
	BaselineInterest float64       `json:"baselineInterest"`
	Savings          float64       `json:"savings"`
}

// GetSummary computes the dashboard summary for a portfolio (all portfolios
// when portfolioID is empty) as of the given date.
//
// Accrued interest covers open trades only; realized profit is the price P&L
// locked in by closures, interest not deducted.
func (s *AnalyticsService) GetSummary(portfolioID string, asOf time.Time) (Summary, error) {
	trades, err := s.tradeRepo.GetTrades(portfolioID)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeAnalytics, err)
	}

	changes, err := s.rateChangeService.Timeline()
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeAnalytics, err)
	}

	var summary Summary
	var rateWeight float64

	for _, trade := range trades {
		var tradeProfit float64
		for _, c := range trade.Closures {
			tradeProfit += (c.ExitPrice - trade.EntryPrice) * c.ClosedQuantity
		}
		summary.RealizedProfit += tradeProfit

		if trade.ExitDate != nil {
			summary.ClosedTrades++
			if tradeProfit > 0 {
				summary.WinningTrades++
			}
			continue
		}
		summary.OpenTrades++

		accrual := interest.Compute(accrualPosition(trade), changes, asOf)
		basis := trade.TotalCost()

		summary.OpenCostBasis += basis
		summary.AccruedInterest += accrual.TotalInterest
		summary.DailyInterest += basis * accrual.EffectiveRate / 100 / 365
		rateWeight += basis * accrual.EffectiveRate
	}

	if summary.OpenCostBasis > 0 {
		summary.WeightedAverageRate = rateWeight / summary.OpenCostBasis
	}
	if summary.ClosedTrades > 0 {
		summary.WinRate = round2(float64(summary.WinningTrades) / float64(summary.ClosedTrades) * 100)
	}
	return summary, nil
}

// GetMonthly buckets realized price P&L by the month the closing happened in.
// Every month in [from, to] appears in the result, zero months included, in
// ascending order. Partial closes land in the month of their own exit date.
func (s *AnalyticsService) GetMonthly(portfolioID string, from, to time.Time) ([]MonthProfit, error) {
	trades, err := s.tradeRepo.GetTrades(portfolioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeAnalytics, err)
	}

	buckets := make(map[string]float64)
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := []string{}
	for !cursor.After(to) {
		months = append(months, cursor.Format("2006-01"))
		buckets[cursor.Format("2006-01")] = 0
		cursor = cursor.AddDate(0, 1, 0)
	}

	for _, trade := range trades {
		for _, c := range trade.Closures {
			if c.ExitDate.Before(from) || c.ExitDate.After(to) {
				continue
			}
			buckets[c.ExitDate.Format("2006-01")] += (c.ExitPrice - trade.EntryPrice) * c.ClosedQuantity
		}
	}

	report := make([]MonthProfit, 0, len(months))
	for _, month := range months {
		report = append(report, MonthProfit{Month: month, Profit: round2(buckets[month])})
	}
	return report, nil
}

// GetSymbols aggregates the trade book per symbol: how many trades touched
// the symbol and how much price P&L its closures realized. Sorted by profit,
// best first.
func (s *AnalyticsService) GetSymbols(portfolioID string) ([]SymbolStats, error) {
	trades, err := s.tradeRepo.GetTrades(portfolioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeAnalytics, err)
	}

	bySymbol := make(map[string]*SymbolStats)
	order := []string{}
	for _, trade := range trades {
		stats, ok := bySymbol[trade.Symbol]
		if !ok {
			stats = &SymbolStats{Symbol: trade.Symbol}
			bySymbol[trade.Symbol] = stats
			order = append(order, trade.Symbol)
		}
		stats.Trades++
		for _, c := range trade.Closures {
			stats.Profit += (c.ExitPrice - trade.EntryPrice) * c.ClosedQuantity
		}
	}

	report := make([]SymbolStats, 0, len(order))
	for _, symbol := range order {
		stats := bySymbol[symbol]
		stats.Profit = round2(stats.Profit)
		report = append(report, *stats)
	}
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Profit > report[j].Profit
	})
	return report, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetRatesImpact reports, per open trade, the interest actually accrued under
// the rate timeline versus the entry-rate baseline, plus totals. A positive
// savings figure means rate cuts have outweighed hikes.
func (s *AnalyticsService) GetRatesImpact(portfolioID string, asOf time.Time) (RatesImpactReport, error) {
	trades, err := s.tradeRepo.GetTrades(portfolioID)
	if err != nil {
		return RatesImpactReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeAnalytics, err)
	}

	changes, err := s.rateChangeService.Timeline()
	if err != nil {
		return RatesImpactReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeAnalytics, err)
	}

	report := RatesImpactReport{Trades: []TradeImpact{}}
	for _, trade := range trades {
		if trade.ExitDate != nil {
			continue
		}

		accrual := interest.Compute(accrualPosition(trade), changes, asOf)
		impact := TradeImpact{
			TradeID:          trade.ID,
			Symbol:           trade.Symbol,
			EntryRate:        trade.MarginRate,
			CurrentRate:      accrual.EffectiveRate,
			ActualInterest:   accrual.TotalInterest,
			BaselineInterest: accrual.BaselineInterest,
			Savings:          accrual.Savings,
		}

		report.Trades = append(report.Trades, impact)
		report.ActualInterest += impact.ActualInterest
		report.BaselineInterest += impact.BaselineInterest
		report.Savings += impact.Savings
	}

	return report, nil
}
