// Package interest implements variable-rate margin interest accrual.
//
// The package is pure computation: it never reads the clock, the database,
// or any other ambient state. Callers load the position and the rate-change
// timeline, pick the closing date, and pass everything in. This keeps the
// engine deterministic and directly testable.
package interest

import (
	"sort"
	"time"
)

// daysPerYear is the fixed day-count convention for simple daily interest.
// Leap years are intentionally not special-cased.
const daysPerYear = 365

// Position describes a margin position for accrual purposes.
// EntryPrice * Quantity is the cost basis the rate applies to; the basis is
// fixed for the life of the position.
type Position struct {
	EntryDate  time.Time
	EntryPrice float64
	Quantity   float64
	AnnualRate float64    // annual percentage in force from EntryDate
	ExitDate   *time.Time // nil while the position is open
}

// CostBasis returns the amount interest accrues on.
func (p Position) CostBasis() float64 {
	return p.EntryPrice * p.Quantity
}

// RateChange is a central-bank style rate event: from EffectiveDate
// (inclusive) onward, Rate replaces the previously effective annual rate.
type RateChange struct {
	EffectiveDate time.Time
	Rate          float64
}

// Period is a contiguous date range during which a single rate applied.
// End is exclusive in day-count terms: Days = End - Start in whole days.
type Period struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Days     int       `json:"days"`
	Rate     float64   `json:"rate"`
	Interest float64   `json:"interest"`
}

// Accrual is the full result of Compute. Periods tile
// [EntryDate, asOf) exactly, with no gaps, overlaps, or zero-day entries.
type Accrual struct {
	Periods          []Period `json:"periods"`
	TotalInterest    float64  `json:"totalInterest"`
	EffectiveRate    float64  `json:"effectiveRate"`
	BaselineInterest float64  `json:"baselineInterest"`
	Savings          float64  `json:"savings"`
}

// DailyCharge is one calendar day's interest, used for day-by-day schedules.
type DailyCharge struct {
	Date   time.Time `json:"date"`
	Rate   float64   `json:"rate"`
	Amount float64   `json:"amount"`
}

// Compute partitions the holding period of pos into rate-constant periods and
// sums simple daily interest over them.
//
// The closing date is min(asOf, pos.ExitDate): closed positions freeze at
// their exit date, open positions accrue up to the caller-supplied "today".
//
// changes may arrive in any order. Events dated before the position entry or
// after the closing date do not apply. Two events sharing an effective date
// resolve to the later-inserted one: the sort is stable, and an event landing
// on the cursor date swaps the rate without emitting a zero-day period, so
// the last one applied wins.
//
// BaselineInterest is what the position would have cost had the entry rate
// never changed; Savings = BaselineInterest - TotalInterest (negative when
// rate hikes outweighed cuts).
//
// Degenerate inputs (asOf on or before entry) yield an empty period list and
// zero interest rather than an error.
func Compute(pos Position, changes []RateChange, asOf time.Time) Accrual {
	end := dateOnly(asOf)
	if pos.ExitDate != nil && pos.ExitDate.Before(end) {
		end = dateOnly(*pos.ExitDate)
	}
	entry := dateOnly(pos.EntryDate)

	result := Accrual{
		Periods:       []Period{},
		EffectiveRate: pos.AnnualRate,
	}
	if !entry.Before(end) {
		return result
	}

	applicable := make([]RateChange, 0, len(changes))
	for _, c := range changes {
		d := dateOnly(c.EffectiveDate)
		if d.Before(entry) || d.After(end) {
			continue
		}
		applicable = append(applicable, RateChange{EffectiveDate: d, Rate: c.Rate})
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].EffectiveDate.Before(applicable[j].EffectiveDate)
	})

	basis := pos.CostBasis()
	cursor := entry
	rate := pos.AnnualRate

	for _, c := range applicable {
		if c.EffectiveDate.After(cursor) {
			result.Periods = append(result.Periods, makePeriod(basis, rate, cursor, c.EffectiveDate))
			cursor = c.EffectiveDate
		}
		rate = c.Rate
	}
	if cursor.Before(end) {
		result.Periods = append(result.Periods, makePeriod(basis, rate, cursor, end))
	}

	for _, p := range result.Periods {
		result.TotalInterest += p.Interest
	}
	result.EffectiveRate = rate
	result.BaselineInterest = basis * pos.AnnualRate / 100 / daysPerYear * float64(daysBetween(entry, end))
	result.Savings = result.BaselineInterest - result.TotalInterest
	return result
}

// DailySchedule expands the accrual into one charge per calendar day, entry
// date inclusive and closing date exclusive. The per-day amounts sum to the
// same total Compute reports.
func DailySchedule(pos Position, changes []RateChange, asOf time.Time) []DailyCharge {
	accrual := Compute(pos, changes, asOf)

	schedule := []DailyCharge{}
	for _, p := range accrual.Periods {
		daily := p.Interest / float64(p.Days)
		for d := p.Start; d.Before(p.End); d = d.AddDate(0, 0, 1) {
			schedule = append(schedule, DailyCharge{Date: d, Rate: p.Rate, Amount: daily})
		}
	}
	return schedule
}

func makePeriod(basis, rate float64, start, end time.Time) Period {
	days := daysBetween(start, end)
	return Period{
		Start:    start,
		End:      end,
		Days:     days,
		Rate:     rate,
		Interest: basis * rate / 100 / daysPerYear * float64(days),
	}
}

// dateOnly strips the time component, keeping calendar-day arithmetic exact.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
