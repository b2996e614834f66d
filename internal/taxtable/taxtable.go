// Package taxtable implements Brazil's regressive income-tax bracket
// lookup for fixed-income instruments (the "IOF"-adjacent revenue tax
// bracketing described in spec.md §4.5), by calendar days held.
package taxtable

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/ftypes"
)

// ErrInternalDateError is returned when a bracket lookup is given a
// reversed or degenerate date range — a programmer error per spec.md §7,
// not a recoverable domain condition. It wraps the shared
// ftypes.ErrInternalDateError sentinel so callers can discriminate it with
// errors.Is(err, fincore.ErrInternalDateError), per §7.
var ErrInternalDateError = fmt.Errorf("taxtable: end date must be after begin date: %w", ftypes.ErrInternalDateError)

type bracket struct {
	min, max int // days span, (min, max]; max == 0 means unbounded
	rate     decimal.Decimal
}

var brackets = []bracket{
	{0, 180, decimal.NewFromFloat(0.225)},
	{180, 360, decimal.NewFromFloat(0.20)},
	{360, 720, decimal.NewFromFloat(0.175)},
	{720, 0, decimal.NewFromFloat(0.15)},
}

// Rate returns the withholding rate applicable to a position held from
// begin to end (exclusive lower bound, inclusive upper bound, per bracket).
// end must be strictly after begin.
func Rate(begin, end time.Time) (decimal.Decimal, error) {
	if !end.After(begin) {
		return decimal.Zero, ErrInternalDateError
	}
	days := int(end.Sub(begin).Hours() / 24)
	for _, b := range brackets {
		if b.max == 0 {
			if days > b.min {
				return b.rate, nil
			}
			continue
		}
		if days > b.min && days <= b.max {
			return b.rate, nil
		}
	}
	// Unreachable: the bracket table is exhaustive over (0, +inf), and
	// days > 0 is guaranteed by the end.After(begin) check above.
	return decimal.Zero, ErrInternalDateError
}
