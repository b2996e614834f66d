// Package schedule implements the four schedule preprocessors (C9, spec.md
// §4.8): Bullet, JurosMensais, Price and Livre. Each produces a merged,
// sorted, unique-dated []ftypes.Entry the amortization/dailyreturn engines
// consume directly.
package schedule

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/ftypes"
	"github.com/inco-org/fincore/internal/decimalx"
	"github.com/inco-org/fincore/internal/pricetable"
)

const daysPerInstallment = 30
const anniversaryTolerance = 20

// MaxBareValue is the "pay off everything" sentinel the original Rust
// implementation exposed as AmortizationBare::MAX_VALUE (SPEC_FULL.md
// Expansion C.2) — Go decimals have no MAX constant, so callers that want
// a prepayment to mean "whatever balance remains" pass this instead of a
// literal figure.
var MaxBareValue = decimal.New(1, 18)

// Insertion is an extraordinary prepayment a caller wants merged into a
// schedule, before ftypes.Entry-tagging.
type Insertion struct {
	Date  time.Time
	Value decimal.Decimal
}

// Bullet builds a single-maturity schedule: origination at zeroDate,
// principal and any remaining interest due in full at maturity. anniversary
// overrides the computed maturity date when non-nil, within tolerance.
func Bullet(zeroDate time.Time, anniversary *time.Time, term int, insertions []Insertion) ([]ftypes.Entry, error) {
	if term < 1 {
		return nil, ftypes.ErrInvalidTerm
	}
	expected := zeroDate.AddDate(0, 0, daysPerInstallment*term)
	maturity, err := resolveAnniversary(zeroDate, anniversary, expected)
	if err != nil {
		return nil, err
	}

	entries := []ftypes.Entry{
		ftypes.Regular(zeroDate, decimalx.Zero, false),
		ftypes.Regular(maturity, decimalx.One, true),
	}
	return mergeAndValidate(entries, zeroDate, maturity, insertions)
}

// JurosMensais builds an interest-only schedule: every 30 days (from
// zeroDate or anniversary) a zero-ratio, interest-settling entry, with the
// final entry also carrying the full principal ratio. vir may be nil;
// Poupança is not supported in this mode (spec.md §7 UnsupportedIndex).
func JurosMensais(zeroDate time.Time, anniversary *time.Time, term int, insertions []Insertion, vir *ftypes.VariableIndex) ([]ftypes.Entry, error) {
	if term < 1 {
		return nil, ftypes.ErrInvalidTerm
	}
	if vir != nil && vir.Code == ftypes.VrPoupanca {
		return nil, ftypes.ErrUnsupportedIndex
	}
	expected := zeroDate.AddDate(0, 0, daysPerInstallment)
	base, err := resolveAnniversary(zeroDate, anniversary, expected)
	if err != nil {
		return nil, err
	}

	entries := make([]ftypes.Entry, 0, term+1)
	entries = append(entries, ftypes.Regular(zeroDate, decimalx.Zero, false))
	for k := 1; k < term; k++ {
		date := base.AddDate(0, 0, daysPerInstallment*(k-1))
		entries = append(entries, ftypes.Regular(date, decimalx.Zero, true))
	}
	maturity := base.AddDate(0, 0, daysPerInstallment*(term-1))
	entries = append(entries, ftypes.Regular(maturity, decimalx.One, true))

	return mergeAndValidate(entries, zeroDate, maturity, insertions)
}

// Price builds a constant-installment schedule via the price-table
// amortizer (C8).
func Price(zeroDate time.Time, anniversary *time.Time, term int, principal, apy decimal.Decimal, insertions []Insertion) ([]ftypes.Entry, error) {
	if term < 1 {
		return nil, ftypes.ErrInvalidTerm
	}
	expected := zeroDate.AddDate(0, 0, daysPerInstallment)
	base, err := resolveAnniversary(zeroDate, anniversary, expected)
	if err != nil {
		return nil, err
	}

	ratios := pricetable.Ratios(principal, apy, term)
	entries := make([]ftypes.Entry, 0, term+1)
	entries = append(entries, ftypes.Regular(zeroDate, decimalx.Zero, false))
	var maturity time.Time
	for k := 0; k < term; k++ {
		date := base.AddDate(0, 0, daysPerInstallment*k)
		entries = append(entries, ftypes.Regular(date, ratios[k], true))
		maturity = date
	}
	return mergeAndValidate(entries, zeroDate, maturity, insertions)
}

// Livre merges a caller-supplied regular schedule (already ftypes.Entry
// Regular values) with any extraordinary insertions, validating but never
// generating dates itself. vir may be nil; Poupança is not supported in
// this mode (spec.md §7 UnsupportedIndex).
func Livre(entries []ftypes.Entry, insertions []Insertion, vir *ftypes.VariableIndex) ([]ftypes.Entry, error) {
	if len(entries) < 2 {
		return nil, ftypes.ErrInvalidSchedule
	}
	if vir != nil && vir.Code == ftypes.VrPoupanca {
		return nil, ftypes.ErrUnsupportedIndex
	}
	zeroDate := entries[0].Date
	lastDate := entries[len(entries)-1].Date
	merged := make([]ftypes.Entry, len(entries))
	copy(merged, entries)
	return mergeAndValidate(merged, zeroDate, lastDate, insertions)
}

// resolveAnniversary returns expected when anniversary is nil, otherwise
// validates *anniversary against expected within ±anniversaryTolerance
// days and that it strictly follows zeroDate, per spec.md §4.8.
func resolveAnniversary(zeroDate time.Time, anniversary *time.Time, expected time.Time) (time.Time, error) {
	if anniversary == nil {
		return expected, nil
	}
	a := *anniversary
	if !a.After(zeroDate) {
		return time.Time{}, ftypes.ErrInvalidAnniversary
	}
	diff := int(a.Sub(expected).Hours() / 24)
	if diff < -anniversaryTolerance || diff > anniversaryTolerance {
		return time.Time{}, ftypes.ErrInvalidAnniversary
	}
	return a, nil
}

// mergeAndValidate folds insertions into entries as Bare ftypes.Entry
// values with a DctOverride spanning [zeroDate, lastDate] and
// PredatesFirstAmortization set (spec.md §4.8's "DCT override spanning the
// whole period" rule for Bullet, applied uniformly across modes since C9's
// merge responsibility is the same regardless of which preprocessor built
// the regular entries), then validates uniqueness and the ratio-sum
// invariant.
func mergeAndValidate(entries []ftypes.Entry, zeroDate, lastDate time.Time, insertions []Insertion) ([]ftypes.Entry, error) {
	dctOverride := ftypes.DctOverride{DateFrom: zeroDate, DateTo: lastDate, PredatesFirstAmortization: true}

	for _, ins := range insertions {
		if !ins.Value.IsPositive() {
			return nil, ftypes.ErrInvalidInsertion
		}
		if !ins.Date.After(zeroDate) || ins.Date.After(lastDate) {
			return nil, ftypes.ErrInvalidInsertion
		}
		entries = append(entries, ftypes.Bare(ins.Date, ins.Value).WithDct(dctOverride))
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		key := e.Date.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			return nil, ftypes.ErrInvalidSchedule
		}
		seen[key] = struct{}{}
	}

	if err := validateRatioSum(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// validateRatioSum enforces spec.md §3's Σ ratio == 1 (±1e-9) invariant
// over regular entries, distinguishing an over-subscribed schedule
// (RatioOverflow) from any other mismatch (InvalidSchedule).
func validateRatioSum(entries []ftypes.Entry) error {
	sum := decimalx.Zero
	for _, e := range entries {
		if !e.IsBare {
			sum = sum.Add(e.Ratio)
		}
	}
	if sum.GreaterThan(decimalx.One.Add(decimalx.Tolerance)) {
		return ftypes.ErrRatioOverflow
	}
	if !decimalx.CloseToOne(sum) {
		return ftypes.ErrInvalidSchedule
	}
	return nil
}
