// Package fifo implements FIFO cost-basis matching and P&L for spot
// transactions.
//
// Like the interest engine, this package is pure: every call recomputes from
// the complete transaction history it is handed, current prices come in as an
// argument, and the result is a fresh immutable snapshot. There is no running
// engine instance to keep consistent.
package fifo

import (
	"sort"
	"time"
)

// TxType enumerates spot transaction types. Only BUY and SELL move share
// lots; the cash types are handled by the cash reducer.
type TxType string

const (
	TypeBuy      TxType = "BUY"
	TypeSell     TxType = "SELL"
	TypeDeposit  TxType = "DEPOSIT"
	TypeWithdraw TxType = "WITHDRAW"
	TypeDividend TxType = "DIVIDEND"
)

// Transaction is the engine's input record, normalized by the caller.
type Transaction struct {
	Ticker   string
	Type     TxType
	Date     time.Time
	Price    float64
	Quantity float64
}

// Amount is the cash value of the transaction.
func (t Transaction) Amount() float64 {
	return t.Price * t.Quantity
}

// Lot is a batch of shares bought at one price and date, consumed oldest
// first. 0 <= RemainingQuantity <= OriginalQuantity.
type Lot struct {
	PurchaseDate      time.Time `json:"purchaseDate"`
	UnitPrice         float64   `json:"unitPrice"`
	OriginalQuantity  float64   `json:"originalQuantity"`
	RemainingQuantity float64   `json:"remainingQuantity"`
}

// RealizedSale records the P&L locked in by one SELL transaction.
type RealizedSale struct {
	Date       time.Time `json:"date"`
	Ticker     string    `json:"ticker"`
	Quantity   float64   `json:"quantity"`
	SalePrice  float64   `json:"salePrice"`
	Proceeds   float64   `json:"proceeds"`
	CostBasis  float64   `json:"costBasis"`
	RealizedPL float64   `json:"realizedPL"`
}

// Position is the point-in-time snapshot for one ticker after all its
// transactions have been processed. CurrentPrice, CurrentValue and
// UnrealizedPL stay zero when no usable quote was supplied.
type Position struct {
	Ticker          string  `json:"ticker"`
	SharesRemaining float64 `json:"sharesRemaining"`
	AverageCost     float64 `json:"averageCost"`
	CostBasis       float64 `json:"costBasis"`
	CurrentPrice    float64 `json:"currentPrice"`
	CurrentValue    float64 `json:"currentValue"`
	UnrealizedPL    float64 `json:"unrealizedPL"`
	RealizedPL      float64 `json:"realizedPL"`
	TotalPL         float64 `json:"totalPL"`
	Lots            []Lot   `json:"lots"`
}

// Totals aggregates across all tickers.
type Totals struct {
	RealizedPL   float64 `json:"realizedPL"`
	UnrealizedPL float64 `json:"unrealizedPL"`
	TotalPL      float64 `json:"totalPL"`
	CostBasis    float64 `json:"costBasis"`
	CurrentValue float64 `json:"currentValue"`
}

// Result is the full output of Compute.
type Result struct {
	Positions map[string]Position `json:"positions"`
	Sales     []RealizedSale      `json:"sales"`
	Totals    Totals              `json:"totals"`
}

// CashSummary is the running-balance view over the cash-affecting
// transaction types.
type CashSummary struct {
	Deposits     float64 `json:"deposits"`
	Withdrawals  float64 `json:"withdrawals"`
	Dividends    float64 `json:"dividends"`
	Invested     float64 `json:"invested"`
	SaleProceeds float64 `json:"saleProceeds"`
	Balance      float64 `json:"balance"`
}

// Compute processes BUY/SELL transactions per ticker in chronological order,
// matching each sale against the oldest open lots.
//
// Input order does not matter: transactions are sorted by date with a stable
// sort before processing. A SELL larger than the open lots consumes whatever
// cost basis is available and stops; the surplus quantity realizes its full
// proceeds against zero basis. That mirrors the upstream data (an oversell is
// a data-entry problem, not this engine's error to raise).
//
// quotes maps ticker to current price. A missing or non-positive quote makes
// unrealized P&L and current value zero for that ticker, never an error.
//
// A fully sold-down ticker still appears in the result with its realized
// P&L; it contributes nothing to cost basis or current value.
func Compute(txs []Transaction, quotes map[string]float64) Result {
	byTicker := make(map[string][]Transaction)
	var order []string
	for _, tx := range txs {
		if tx.Ticker == "" || (tx.Type != TypeBuy && tx.Type != TypeSell) {
			continue
		}
		if _, seen := byTicker[tx.Ticker]; !seen {
			order = append(order, tx.Ticker)
		}
		byTicker[tx.Ticker] = append(byTicker[tx.Ticker], tx)
	}

	result := Result{Positions: make(map[string]Position)}

	for _, ticker := range order {
		list := byTicker[ticker]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date.Before(list[j].Date)
		})

		var lots []Lot
		var realized float64
		var sales []RealizedSale

		for _, tx := range list {
			switch tx.Type {
			case TypeBuy:
				lots = append(lots, Lot{
					PurchaseDate:      tx.Date,
					UnitPrice:         tx.Price,
					OriginalQuantity:  tx.Quantity,
					RemainingQuantity: tx.Quantity,
				})
			case TypeSell:
				var consumedBasis float64
				remaining := tx.Quantity
				for remaining > 0 && len(lots) > 0 {
					lot := &lots[0]
					consumed := remaining
					if lot.RemainingQuantity < consumed {
						consumed = lot.RemainingQuantity
					}
					consumedBasis += consumed * lot.UnitPrice
					lot.RemainingQuantity -= consumed
					remaining -= consumed
					if lot.RemainingQuantity <= 0 {
						lots = lots[1:]
					}
				}

				sale := RealizedSale{
					Date:       tx.Date,
					Ticker:     ticker,
					Quantity:   tx.Quantity,
					SalePrice:  tx.Price,
					Proceeds:   tx.Amount(),
					CostBasis:  consumedBasis,
					RealizedPL: tx.Amount() - consumedBasis,
				}
				realized += sale.RealizedPL
				sales = append(sales, sale)
			}
		}

		pos := Position{Ticker: ticker, RealizedPL: realized, Lots: lots}
		for _, lot := range lots {
			pos.SharesRemaining += lot.RemainingQuantity
			pos.CostBasis += lot.RemainingQuantity * lot.UnitPrice
		}
		if pos.SharesRemaining > 0 {
			pos.AverageCost = pos.CostBasis / pos.SharesRemaining
			if price, ok := quotes[ticker]; ok && price > 0 {
				pos.CurrentPrice = price
				pos.CurrentValue = pos.SharesRemaining * price
				pos.UnrealizedPL = pos.SharesRemaining * (price - pos.AverageCost)
			}
		}
		pos.TotalPL = pos.RealizedPL + pos.UnrealizedPL

		if pos.SharesRemaining > 0 || len(sales) > 0 {
			result.Positions[ticker] = pos
			result.Totals.RealizedPL += pos.RealizedPL
			result.Totals.UnrealizedPL += pos.UnrealizedPL
			result.Totals.CostBasis += pos.CostBasis
			result.Totals.CurrentValue += pos.CurrentValue
		}
		result.Sales = append(result.Sales, sales...)
	}

	result.Totals.TotalPL = result.Totals.RealizedPL + result.Totals.UnrealizedPL
	sort.SliceStable(result.Sales, func(i, j int) bool {
		return result.Sales[i].Date.Before(result.Sales[j].Date)
	})
	return result
}

// CashBalance folds the transaction list into cash movement totals. Buys
// spend cash; sells, deposits and dividends add it.
func CashBalance(txs []Transaction) CashSummary {
	var s CashSummary
	for _, tx := range txs {
		switch tx.Type {
		case TypeDeposit:
			s.Deposits += tx.Amount()
		case TypeWithdraw:
			s.Withdrawals += tx.Amount()
		case TypeDividend:
			s.Dividends += tx.Amount()
		case TypeBuy:
			s.Invested += tx.Amount()
		case TypeSell:
			s.SaleProceeds += tx.Amount()
		}
	}
	s.Balance = s.Deposits - s.Withdrawals + s.Dividends + s.SaleProceeds - s.Invested
	return s
}
