// Package amortization implements the amortization state machine (C6,
// spec.md §4.3): it walks a preprocessed schedule, maintains the interest
// and principal registers, and emits one Payment per schedule entry.
package amortization

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/ftypes"
	"github.com/inco-org/fincore/internal/decimalx"
	"github.com/inco-org/fincore/internal/taxtable"
	"github.com/inco-org/fincore/internal/yieldfactor"
)

// Payment is one emitted payment-table row, per spec.md §3.
type Payment struct {
	No    int
	Date  time.Time
	Raw   decimal.Decimal
	Tax   decimal.Decimal
	Net   decimal.Decimal
	Gain  decimal.Decimal
	Amort decimal.Decimal
	Bal   decimal.Decimal
}

// ComputeConfig is the explicit configuration struct spec.md §9 calls for
// — wrappers (schedule preprocessors plus the root facade) build one of
// these and hand it to GetPaymentsTable; there is no reflection-based
// keyword-argument threading.
type ComputeConfig struct {
	Principal  decimal.Decimal
	APY        decimal.Decimal
	Schedule   []ftypes.Entry
	VIR        *ftypes.VariableIndex
	PLA        *ftypes.PriceLevelAdjustment
	Cap        ftypes.Capitalisation
	CalcDate   *ftypes.CalcDate
	TaxExempt  bool
	GainOutput ftypes.GainOutputMode
}

type registers struct {
	interestCurrent decimal.Decimal
	interestAccrued decimal.Decimal
	settledCurrent  decimal.Decimal
	settledTotal    decimal.Decimal
	deferred        decimal.Decimal

	ratioCurrent decimal.Decimal
	ratioRegular decimal.Decimal

	amortizedCurrent decimal.Decimal
	amortizedTotal   decimal.Decimal
}

func newRegisters() registers {
	return registers{
		interestCurrent: decimalx.Zero, interestAccrued: decimalx.Zero,
		settledCurrent: decimalx.Zero, settledTotal: decimalx.Zero, deferred: decimalx.Zero,
		ratioCurrent: decimalx.Zero, ratioRegular: decimalx.Zero,
		amortizedCurrent: decimalx.Zero, amortizedTotal: decimalx.Zero,
	}
}

// GetPaymentsTable walks cfg.Schedule and emits the payment table, per
// spec.md §4.3.
func GetPaymentsTable(cfg ComputeConfig) ([]Payment, error) {
	if cfg.Principal.IsZero() {
		return nil, nil
	}
	if cfg.Principal.IsNegative() || cfg.Principal.LessThan(decimal.NewFromFloat(0.01)) {
		return nil, ftypes.ErrInvalidPrincipal
	}
	if len(cfg.Schedule) < 2 {
		return nil, ftypes.ErrInvalidSchedule
	}
	if cfg.VIR == nil && cfg.Cap == ftypes.Cap252 {
		return nil, ftypes.ErrIndexMismatch
	}
	if cfg.VIR != nil && cfg.VIR.Code == ftypes.VrCDI && cfg.Cap != ftypes.Cap252 {
		return nil, ftypes.ErrIndexMismatch
	}
	if err := checkRatioSum(cfg.Schedule); err != nil {
		return nil, err
	}

	calcDate := ftypes.CalcDate{Value: cfg.Schedule[len(cfg.Schedule)-1].Date}
	if cfg.CalcDate != nil {
		calcDate = *cfg.CalcDate
	}

	origin := cfg.Schedule[0].Date
	reg := newRegisters()
	var out []Payment
	runawayDone := false

	for i := 0; i < len(cfg.Schedule)-1; i++ {
		ent0, ent1 := cfg.Schedule[i], cfg.Schedule[i+1]
		guard := ent0.Date.Before(calcDate.Value) || !ent1.Date.After(calcDate.Value)

		isRunawayRow := false
		if !guard {
			if !(calcDate.Runaway && !runawayDone) {
				break
			}
			runawayDone = true
			isRunawayRow = true
		}

		// The runaway row (spec.md §4.3/§9) projects one full period past
		// calc_date — it must run to ent1.Date, not be clipped to
		// calc_date like every in-range pair, or the factor computation
		// below sees a negative day count.
		due := minTime(calcDate.Value, ent1.Date)
		if isRunawayRow {
			due = ent1.Date
		}

		fs, fc, err := yieldfactor.Compute(yieldfactor.Params{
			APY: cfg.APY, Cap: cfg.Cap, VIR: cfg.VIR, PLA: cfg.PLA, OriginDate: origin,
			Ent0Date: ent0.Date, Due: due, Ent1Date: ent1.Date,
			Override: ent1.DctOverride, FirstSegment: i == 0,
		})
		if err != nil {
			return nil, err
		}

		balBefore := cfg.Principal.Mul(fc).Add(reg.interestAccrued).
			Sub(reg.amortizedTotal.Mul(fc)).Sub(reg.settledTotal)

		reg.interestCurrent = balBefore.Mul(fs.Sub(decimalx.One))
		reg.interestAccrued = reg.interestAccrued.Add(reg.interestCurrent)
		reg.deferred = reg.interestAccrued.Sub(reg.interestCurrent).Sub(reg.settledTotal)
		reg.settledCurrent = decimalx.Zero

		entrySettlesInterest := entryAmortizesInterest(ent1)

		if !ent1.IsBare {
			denom := decimalx.One.Sub(reg.ratioRegular)
			adj := decimalx.One
			if !denom.IsZero() {
				adj = decimalx.One.Sub(reg.ratioCurrent).Div(denom)
			}
			amortFraction := ent1.Ratio.Mul(adj)
			reg.ratioCurrent = reg.ratioCurrent.Add(amortFraction)
			reg.ratioRegular = reg.ratioRegular.Add(ent1.Ratio)
			reg.amortizedCurrent = amortFraction.Mul(cfg.Principal)
			reg.amortizedTotal = reg.ratioCurrent.Mul(cfg.Principal)
			if entrySettlesInterest {
				reg.settledCurrent = reg.interestCurrent.Add(reg.ratioCurrent.Mul(reg.deferred))
				reg.settledTotal = reg.settledTotal.Add(reg.settledCurrent)
			}
			if reg.ratioCurrent.GreaterThan(decimalx.One.Add(decimalx.Tolerance)) {
				return nil, ftypes.ErrRatioOverflow
			}
		} else {
			balNow := balBefore.Sub(reg.interestCurrent)
			plfv := cfg.Principal.Mul(decimalx.One.Sub(reg.ratioCurrent)).Mul(fc.Sub(decimalx.One))

			val0 := decimalx.Min(ent1.Value, balNow)
			val1 := decimalx.Min(val0, reg.interestAccrued.Sub(reg.settledTotal))
			val2 := decimalx.Min(val0.Sub(val1), plfv)
			val3 := val0.Sub(val1).Sub(val2)

			reg.ratioCurrent = reg.ratioCurrent.Add(val3.Div(cfg.Principal))
			reg.amortizedCurrent = val3
			reg.amortizedTotal = reg.amortizedTotal.Add(val3)
			reg.settledCurrent = val1
			reg.settledTotal = reg.settledTotal.Add(val1)
		}

		bal := cfg.Principal.Mul(fc).Add(reg.interestAccrued).
			Sub(reg.amortizedTotal.Mul(fc)).Sub(reg.settledTotal)

		gain := gainFor(cfg.GainOutput, reg, entrySettlesInterest)
		raw := rawFor(reg, entrySettlesInterest)

		tax := decimalx.Zero
		if entrySettlesInterest && reg.settledCurrent.IsPositive() {
			rate, terr := taxtable.Rate(origin, due)
			if terr != nil {
				return nil, terr
			}
			tax = reg.settledCurrent.Mul(rate)
		}
		if cfg.TaxExempt {
			tax = decimalx.Zero
		}

		raw = decimalx.RoundMoney(raw)
		tax = decimalx.RoundMoney(tax)
		net := decimalx.RoundMoney(raw.Sub(tax))
		roundedBal := decimalx.RoundMoney(bal)

		out = append(out, Payment{
			No:    len(out) + 1,
			Date:  ent1.Date,
			Raw:   raw,
			Tax:   tax,
			Net:   net,
			Gain:  decimalx.RoundMoney(gain),
			Amort: decimalx.RoundMoney(reg.amortizedCurrent),
			Bal:   roundedBal,
		})

		if roundedBal.IsZero() {
			break
		}
		if !guard && runawayDone {
			break
		}
	}

	return out, nil
}

// entryAmortizesInterest reports whether ent1 settles accrued interest at
// this event. A Bare prepayment always does (spec.md §4.3's priority split
// applies val1 to unpaid interest before principal), which is a deliberate
// divergence from the Rust original's `matches!(ent1, Amortization{
// amortizes_interest: true})` gate — the original never taxes a bare
// prepayment's interest portion. Withholding IR on the settled interest
// component of a prepayment, rather than silently deferring it, is the
// behavior spec.md §4.3 B.2's literal text describes and the more correct
// one for Brazilian IR treatment; see DESIGN.md for the recorded decision.
func entryAmortizesInterest(e ftypes.Entry) bool {
	return e.IsBare || e.AmortizesInterest
}

func gainFor(mode ftypes.GainOutputMode, reg registers, settles bool) decimal.Decimal {
	switch mode {
	case ftypes.GainDeferred:
		return reg.deferred.Add(reg.interestCurrent)
	case ftypes.GainSettled:
		if settles {
			return reg.settledCurrent
		}
		return decimalx.Zero
	default:
		return reg.interestCurrent
	}
}

func rawFor(reg registers, settles bool) decimal.Decimal {
	amortPositive := reg.amortizedCurrent.IsPositive()
	switch {
	case amortPositive && settles:
		return reg.amortizedCurrent.Add(reg.settledCurrent)
	case amortPositive:
		return reg.amortizedCurrent
	case settles:
		return reg.settledCurrent
	default:
		return decimalx.Zero
	}
}

func checkRatioSum(schedule []ftypes.Entry) error {
	sum := decimalx.Zero
	for _, e := range schedule {
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

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
