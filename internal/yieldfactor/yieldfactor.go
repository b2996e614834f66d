// Package yieldfactor computes the per-period spread factor f_s and
// correction factor f_c (C5, spec.md §4.2), and their daily-fraction
// counterparts used by the day-by-day replay engine (spec.md §4.4).
package yieldfactor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/ftypes"
	"github.com/inco-org/fincore/index"
	"github.com/inco-org/fincore/internal/caldate"
	"github.com/inco-org/fincore/internal/decimalx"
)

// anchorDay is the fixed day-of-month spec.md §4.2 pins the
// surrounding-month-boundary rule to.
const anchorDay = 24

// Params describes one period segment's factor computation. OriginDate is
// the schedule's first (zero) date — the anchor a PLA or Savings
// correction factor compounds cumulatively from, independent of which
// segment is currently being evaluated.
type Params struct {
	APY        decimal.Decimal
	Cap        ftypes.Capitalisation
	VIR        *ftypes.VariableIndex
	PLA        *ftypes.PriceLevelAdjustment
	OriginDate time.Time

	Ent0Date     time.Time
	Due          time.Time
	Ent1Date     time.Time
	Override     *ftypes.DctOverride
	FirstSegment bool
}

func (p Params) backend() index.Backend {
	if p.VIR != nil && p.VIR.Backend != nil {
		return p.VIR.Backend
	}
	return nil
}

// Compute returns (f_s, f_c) for the segment described by p, per the table
// in spec.md §4.2.
func Compute(p Params) (fs, fc decimal.Decimal, err error) {
	days := caldate.DaysBetween(p.Ent0Date, p.Due)

	switch {
	case p.VIR == nil && p.PLA == nil && p.Cap == ftypes.Cap360:
		return decimalx.InterestFactor(p.APY, decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(360))), decimalx.One, nil

	case p.VIR == nil && p.PLA == nil && p.Cap == ftypes.Cap365:
		return decimalx.InterestFactor(p.APY, decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(365))), decimalx.One, nil

	case p.VIR == nil && p.PLA == nil && p.Cap == ftypes.Cap30360:
		dct := dctDenominator(p)
		t := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(12 * int64(dct)))
		return decimalx.InterestFactor(p.APY, t), decimalx.One, nil

	case p.VIR != nil && p.VIR.Code == ftypes.VrCDI && p.Cap == ftypes.Cap252:
		b := p.backend()
		if b == nil {
			return decimalx.Zero, decimalx.Zero, ftypes.ErrBackendError
		}
		cdiFactor, nCDI, berr := b.CalculateCDIFactor(p.Ent0Date, p.Due, p.VIR.Pct)
		if berr != nil {
			return decimalx.Zero, decimalx.Zero, berr
		}
		apyFactor := decimalx.InterestFactor(p.APY, decimal.NewFromInt(int64(nCDI)).Div(decimal.NewFromInt(252)))
		return apyFactor.Mul(cdiFactor), decimalx.One, nil

	case p.VIR != nil && p.VIR.Code == ftypes.VrPoupanca && p.Cap == ftypes.Cap360:
		b := p.backend()
		if b == nil {
			return decimalx.Zero, decimalx.Zero, ftypes.ErrBackendError
		}
		fs = decimalx.InterestFactor(p.APY, decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(360)))
		fc, err = savingsFactor(b, p.VIR.Pct, p.OriginDate, p.Due)
		return fs, fc, err

	case p.PLA != nil && p.Cap == ftypes.Cap30360:
		b := p.backend()
		if b == nil {
			return decimalx.Zero, decimalx.Zero, ftypes.ErrBackendError
		}
		dct := dctDenominator(p)
		t := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(12 * int64(dct)))
		fs = decimalx.InterestFactor(p.APY, t)
		fc, err = plaFactor(b, *p.PLA, p.OriginDate, p.Due)
		return fs, fc, err
	}

	return decimalx.Zero, decimalx.Zero, ftypes.ErrIndexMismatch
}

// dctDenominator resolves the 30/360 period denominator, honoring a
// DctOverride per spec.md §4.2.
func dctDenominator(p Params) int {
	if p.Override == nil {
		return caldate.DaysBetween(p.Ent0Date, p.Ent1Date)
	}
	if p.Override.PredatesFirstAmortization || p.FirstSegment {
		return caldate.DiffSurroundingDates(p.Ent0Date, anchorDay)
	}
	return caldate.DaysBetween(p.Override.DateFrom, p.Override.DateTo)
}

// savingsFactor compounds the Savings (Poupança) monthly index, scaled by
// pct, cumulatively from origin through due — f_c is a cumulative
// replacement-value multiplier applied directly to principal in the
// balance invariant (spec.md §3), not a per-segment increment.
func savingsFactor(b index.Backend, pct int, origin, due time.Time) (decimal.Decimal, error) {
	ranges, err := b.GetSavingsIndexes(origin, due)
	if err != nil {
		return decimalx.Zero, err
	}
	factor := decimalx.One
	pctRate := decimal.NewFromInt(int64(pct)).Div(decimalx.Hundred)
	for _, r := range ranges {
		from := r.From
		if from.Before(origin) {
			from = origin
		}
		to := r.To
		if to.After(due) {
			to = due
		}
		if !to.After(from) {
			continue
		}
		overlapDays := caldate.DaysBetween(from, to)
		monthly := r.Rate.Div(decimalx.Hundred).Mul(pctRate)
		factor = factor.Mul(decimalx.InterestFactor(monthly, decimal.NewFromInt(int64(overlapDays)).Div(decimal.NewFromInt(30))))
	}
	return factor, nil
}

// plaFactor compounds the monthly price-level index (IPCA/IGPM), scaled
// across pla.Period-month steps, from origin/base_date through due. Like
// savingsFactor, it is a cumulative replacement-value multiplier, not a
// per-segment increment — recomputed fresh on every call against the same
// anchor, per spec.md §3's balance invariant.
func plaFactor(b index.Backend, pla ftypes.PriceLevelAdjustment, origin, due time.Time) (decimal.Decimal, error) {
	base := pla.BaseDate
	if base.IsZero() {
		base = origin
	}
	step := pla.Period
	if step <= 0 {
		step = 1
	}
	code := index.PriceIndexIPCA
	if pla.Code == ftypes.PLAIGPM {
		code = index.PriceIndexIGPM
	}

	factor := decimalx.One
	cursor := base
	for cursor.Before(due) {
		shifted := plaShift(pla.Shift, cursor)
		rate, err := b.GetMonthlyIndex(code, shifted)
		if err != nil {
			return decimalx.Zero, err
		}
		factor = factor.Mul(decimalx.One.Add(rate.Div(decimalx.Hundred)))
		cursor = cursor.AddDate(0, step, 0)
	}
	return factor, nil
}

// plaShift resolves which published index month applies to a correction
// anchored at month, per SPEC_FULL.md Expansion D.1: AUTO defers to M-2
// before the 15th (the prior month's index is not yet reliably published)
// and M-1 from the 15th onward.
func plaShift(shift ftypes.PLAShift, month time.Time) time.Time {
	const publicationDay = 15
	resolved := shift
	if resolved == ftypes.PLAShiftAuto {
		if month.Day() < publicationDay {
			resolved = ftypes.PLAShiftM2
		} else {
			resolved = ftypes.PLAShiftM1
		}
	}
	switch resolved {
	case ftypes.PLAShiftM1:
		return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	case ftypes.PLAShiftM2:
		return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)
	default:
		return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// DailyParams describes a single calendar day's daily-fraction factor
// computation for the replay engine (C7, spec.md §4.4).
type DailyParams struct {
	APY        decimal.Decimal
	Cap        ftypes.Capitalisation
	VIR        *ftypes.VariableIndex
	PLA        *ftypes.PriceLevelAdjustment
	OriginDate time.Time
	Day        time.Time
}

func (p DailyParams) backend() index.Backend {
	if p.VIR != nil && p.VIR.Backend != nil {
		return p.VIR.Backend
	}
	return nil
}

// DailyFactors returns (fixed_factor, variable_factor) for day, per
// spec.md §4.4. variable_factor is the day's CDI factor for CDI, the
// cumulative correction factor through day for PLA, and for Poupança the
// monthly increment on each monthly anniversary of OriginDate (1 on every
// other day, including OriginDate itself); the caller accumulates the
// Poupança increments.
func DailyFactors(p DailyParams) (fixed, variable decimal.Decimal, err error) {
	switch {
	case p.VIR == nil && p.PLA == nil && p.Cap == ftypes.Cap360:
		return decimalx.InterestFactor(p.APY, decimalx.One.Div(decimal.NewFromInt(360))), decimalx.One, nil

	case p.VIR == nil && p.PLA == nil && p.Cap == ftypes.Cap365:
		return decimalx.InterestFactor(p.APY, decimalx.One.Div(decimal.NewFromInt(365))), decimalx.One, nil

	case p.VIR == nil && p.PLA == nil && p.Cap == ftypes.Cap30360:
		daysInMonth := caldate.DaysInMonth(p.Day)
		t := decimalx.One.Div(decimal.NewFromInt(12 * int64(daysInMonth)))
		return decimalx.InterestFactor(p.APY, t), decimalx.One, nil

	case p.VIR != nil && p.VIR.Code == ftypes.VrCDI && p.Cap == ftypes.Cap252:
		b := p.backend()
		if b == nil {
			return decimalx.Zero, decimalx.Zero, ftypes.ErrBackendError
		}
		factor, n, berr := b.CalculateCDIFactor(p.Day, caldate.AddDays(p.Day, 1), p.VIR.Pct)
		if berr != nil {
			return decimalx.Zero, decimalx.Zero, berr
		}
		if n == 0 {
			return decimalx.One, decimalx.One, nil
		}
		fixed = decimalx.InterestFactor(p.APY, decimalx.One.Div(decimal.NewFromInt(252)))
		return fixed, factor, nil

	case p.VIR != nil && p.VIR.Code == ftypes.VrPoupanca && p.Cap == ftypes.Cap360:
		fixed = decimalx.InterestFactor(p.APY, decimalx.One.Div(decimal.NewFromInt(360)))
		variable = decimalx.One
		if p.Day.Day() == p.OriginDate.Day() && p.Day.After(p.OriginDate) {
			b := p.backend()
			if b == nil {
				return decimalx.Zero, decimalx.Zero, ftypes.ErrBackendError
			}
			monthStart := time.Date(p.Day.Year(), p.Day.Month(), 1, 0, 0, 0, 0, time.UTC)
			monthEnd := monthStart.AddDate(0, 1, 0)
			v, err2 := savingsFactor(b, p.VIR.Pct, monthStart, monthEnd)
			if err2 != nil {
				return decimalx.Zero, decimalx.Zero, err2
			}
			variable = v
		}
		return fixed, variable, nil

	case p.PLA != nil && p.Cap == ftypes.Cap30360:
		b := p.backend()
		if b == nil {
			return decimalx.Zero, decimalx.Zero, ftypes.ErrBackendError
		}
		daysInMonth := caldate.DaysInMonth(p.Day)
		t := decimalx.One.Div(decimal.NewFromInt(12 * int64(daysInMonth)))
		fixed = decimalx.InterestFactor(p.APY, t)
		variable, err = plaFactor(b, *p.PLA, p.OriginDate, p.Day)
		return fixed, variable, err
	}

	return decimalx.Zero, decimalx.Zero, ftypes.ErrIndexMismatch
}
