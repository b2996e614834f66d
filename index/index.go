// Package index defines the abstract lookup the amortization engine uses
// for CDI and Savings (Poupança) reference rates, plus an in-memory
// reference implementation seeded with historical CDI data. Callers with
// their own persistence layer for interest-index history implement Backend
// directly; the engine never touches storage itself (spec.md §1).
package index

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrBackend wraps any failure an index.Backend implementation surfaces.
// The engine propagates it verbatim, per spec.md §7's BackendError kind.
var ErrBackend = fmt.Errorf("index: backend error")

// DailyIndex is one day's published CDI rate, expressed in percent
// (e.g. 0.050788 means 0.050788% for that day).
type DailyIndex struct {
	Date  time.Time
	Value decimal.Decimal
}

// RangedIndex is a monthly Savings rate effective over [From, To).
type RangedIndex struct {
	From, To time.Time
	Rate     decimal.Decimal
}

// Backend abstracts the daily CDI/Savings index history. Implementations
// MUST be read-only during a computation (spec.md §5) so the reference
// in-memory implementation below is safe to share across concurrent calls
// once constructed.
type Backend interface {
	// GetCDIIndexes returns one entry per business day in [begin, end),
	// excluding the backend's ignore-set of non-business days.
	GetCDIIndexes(begin, end time.Time) ([]DailyIndex, error)

	// CalculateCDIFactor returns the compounded product of
	// (1 + index_d * pct/100) over the included business days in
	// [begin, end), and the count of days included.
	CalculateCDIFactor(begin, end time.Time, pct int) (factor decimal.Decimal, days int, err error)

	// GetSavingsIndexes returns the monthly rate ranges covering
	// [begin, end).
	GetSavingsIndexes(begin, end time.Time) ([]RangedIndex, error)

	// GetMonthlyIndex returns the published inflation index rate (in
	// percent) for the given index code and calendar month, used to
	// compound a PriceLevelAdjustment's correction factor. month's day
	// component is ignored; only year/month are significant.
	GetMonthlyIndex(code PriceIndexCode, month time.Time) (decimal.Decimal, error)
}

// PriceIndexCode identifies a monthly inflation index a Backend can be
// asked for — IPCA or IGPM. It mirrors ftypes.PLACode without importing
// it, since index must not depend on higher-level packages.
type PriceIndexCode int

const (
	PriceIndexIPCA PriceIndexCode = iota
	PriceIndexIGPM
)

// InMemoryBackend is the reference Backend: an ignore-set of non-business
// days plus a range-indexed CDI history. Missing dates within a range fall
// back to the most recent prior known value, matching spec.md §4.6.
//
// It is immutable after NewInMemoryBackend returns, so it satisfies the
// "safe to share across concurrent calls" clause of spec.md §5.
type InMemoryBackend struct {
	ignoreCDI  map[string]struct{}
	cdiRanges  []cdiRange    // sorted by From
	savingsTbl []RangedIndex // sorted by From
	priceIdx   map[PriceIndexCode]map[string]decimal.Decimal
}

type cdiRange struct {
	From, To time.Time
	Rate     decimal.Decimal
}

// NewInMemoryBackend builds the reference backend from its seeded
// historical CDI series (2017-12-29 through 2022-11-14, the span carried
// by the original reference implementation this engine was ported from)
// and a flat Savings-rate table.
func NewInMemoryBackend() *InMemoryBackend {
	b := &InMemoryBackend{
		ignoreCDI: buildIgnoreSet(defaultIgnoreDates),
	}
	b.cdiRanges = make([]cdiRange, len(defaultCDIRanges))
	copy(b.cdiRanges, defaultCDIRanges)
	sort.Slice(b.cdiRanges, func(i, j int) bool { return b.cdiRanges[i].From.Before(b.cdiRanges[j].From) })

	b.savingsTbl = make([]RangedIndex, len(defaultSavingsRanges))
	copy(b.savingsTbl, defaultSavingsRanges)
	sort.Slice(b.savingsTbl, func(i, j int) bool { return b.savingsTbl[i].From.Before(b.savingsTbl[j].From) })

	b.priceIdx = map[PriceIndexCode]map[string]decimal.Decimal{
		PriceIndexIPCA: monthlyIndexMap(defaultIPCAMonthly),
		PriceIndexIGPM: monthlyIndexMap(defaultIGPMMonthly),
	}
	return b
}

func monthlyIndexMap(entries []monthlyRate) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		m[monthKey(e.month)] = e.rate
	}
	return m
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// GetMonthlyIndex implements Backend. Missing months fall back to the
// nearest earlier published month's rate, the same "prior known value"
// fallback GetCDIIndexes/rateAt use for CDI. When no rate is published in
// the 36 months before month, it returns a zero rate and a nil error.
func (b *InMemoryBackend) GetMonthlyIndex(code PriceIndexCode, month time.Time) (decimal.Decimal, error) {
	tbl, ok := b.priceIdx[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown price index code", ErrBackend)
	}
	if rate, ok := tbl[monthKey(month)]; ok {
		return rate, nil
	}
	// Walk backwards up to 36 months for the nearest published rate.
	cursor := month
	for i := 0; i < 36; i++ {
		cursor = time.Date(cursor.Year(), cursor.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		if rate, ok := tbl[monthKey(cursor)]; ok {
			return rate, nil
		}
	}
	return decimal.Zero, nil
}

func buildIgnoreSet(dates []time.Time) map[string]struct{} {
	m := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		m[key(d)] = struct{}{}
	}
	return m
}

func key(t time.Time) string {
	return t.Format("2006-01-02")
}

func (b *InMemoryBackend) isIgnored(d time.Time) bool {
	_, ok := b.ignoreCDI[key(d)]
	return ok
}

// rateAt returns the daily CDI rate in effect on date d, falling back to
// the most recent prior known range if d precedes or falls in a gap.
func (b *InMemoryBackend) rateAt(d time.Time) decimal.Decimal {
	var fallback decimal.Decimal
	haveFallback := false
	for _, r := range b.cdiRanges {
		if !d.Before(r.From) && d.Before(r.To.AddDate(0, 0, 1)) {
			return r.Rate
		}
		if !r.From.After(d) {
			fallback = r.Rate
			haveFallback = true
		}
	}
	if haveFallback {
		return fallback
	}
	return decimal.Zero
}

// GetCDIIndexes implements Backend.
func (b *InMemoryBackend) GetCDIIndexes(begin, end time.Time) ([]DailyIndex, error) {
	var out []DailyIndex
	for d := begin; d.Before(end); d = d.AddDate(0, 0, 1) {
		if b.isIgnored(d) || isWeekend(d) {
			continue
		}
		out = append(out, DailyIndex{Date: d, Value: b.rateAt(d)})
	}
	return out, nil
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// CalculateCDIFactor implements Backend.
func (b *InMemoryBackend) CalculateCDIFactor(begin, end time.Time, pct int) (decimal.Decimal, int, error) {
	indexes, err := b.GetCDIIndexes(begin, end)
	if err != nil {
		return decimal.Zero, 0, err
	}
	factor := decimal.NewFromInt(1)
	pctDec := decimal.NewFromInt(int64(pct))
	centi := decimal.NewFromFloat(0.01)
	for _, idx := range indexes {
		factor = factor.Mul(decimal.NewFromInt(1).Add(idx.Value.Mul(pctDec).Mul(centi)))
	}
	return factor, len(indexes), nil
}

// GetSavingsIndexes implements Backend.
func (b *InMemoryBackend) GetSavingsIndexes(begin, end time.Time) ([]RangedIndex, error) {
	var out []RangedIndex
	for _, r := range b.savingsTbl {
		if r.To.After(begin) && r.From.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}
