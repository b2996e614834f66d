// Package dailyreturn implements the day-by-day replay engine (C7, spec.md
// §4.4): a single pull-iterator loop over calendar days, replacing the
// original's cooperative "tracker" generators with in-place register
// updates (spec.md §9).
package dailyreturn

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/ftypes"
	"github.com/inco-org/fincore/internal/caldate"
	"github.com/inco-org/fincore/internal/decimalx"
	"github.com/inco-org/fincore/internal/yieldfactor"
)

// DailyReturn is one emitted daily-return row, per spec.md §3.
type DailyReturn struct {
	No             int
	Period         int
	Date           time.Time
	Value          decimal.Decimal
	Bal            decimal.Decimal
	FixedFactor    decimal.Decimal
	VariableFactor decimal.Decimal
}

// Config mirrors amortization.ComputeConfig's shape for the replay
// engine — the same explicit configuration struct pattern (spec.md §9),
// without CalcDate/GainOutput/TaxExempt, which only the payment table
// needs.
type Config struct {
	Principal decimal.Decimal
	APY       decimal.Decimal
	Schedule  []ftypes.Entry
	VIR       *ftypes.VariableIndex
	PLA       *ftypes.PriceLevelAdjustment
	Cap       ftypes.Capitalisation
}

// GetDailyReturns replays cfg.Schedule one calendar day at a time from the
// first entry's date to the last, per spec.md §4.4.
func GetDailyReturns(cfg Config) ([]DailyReturn, error) {
	if cfg.Principal.IsZero() {
		return nil, nil
	}
	if len(cfg.Schedule) < 2 {
		return nil, ftypes.ErrInvalidSchedule
	}

	origin := cfg.Schedule[0].Date
	last := cfg.Schedule[len(cfg.Schedule)-1].Date

	accrued := decimalx.Zero
	settledTotal := decimalx.Zero
	ratioCurrent := decimalx.Zero
	ratioRegular := decimalx.Zero
	amortizedTotal := decimalx.Zero

	interestCurrentPeriod := decimalx.Zero
	period := 0
	scheduleIdx := 1 // next pending event index into cfg.Schedule
	runningFc := decimalx.One // Poupança's running cumulative correction

	var out []DailyReturn
	no := 0

	for d := origin; !d.After(last); d = caldate.AddDays(d, 1) {
		no++
		fixed, variable, err := yieldfactor.DailyFactors(yieldfactor.DailyParams{
			APY: cfg.APY, Cap: cfg.Cap, VIR: cfg.VIR, PLA: cfg.PLA,
			OriginDate: origin, Day: d,
		})
		if err != nil {
			return nil, err
		}

		// fc is the cumulative replacement-value correction applied to
		// principal in the balance invariant (spec.md §3); growthRate is
		// the period's pure interest-rate component. PLA's variable is
		// already the cumulative factor through today (yieldfactor.go's
		// plaFactor), so it belongs on fc, not folded again into the
		// day's growth rate. Poupança's variable is only the anniversary
		// day's monthly increment (1 every other day), so fc instead
		// accumulates it across days. Neither case folds a second,
		// independently-tracked factor on top — doing so double-counts
		// the correction on the day it changes.
		var fc, growthRate, variableOut decimal.Decimal
		switch {
		case cfg.PLA != nil:
			fc = variable
			growthRate = fixed
			variableOut = fc
		case cfg.VIR != nil && cfg.VIR.Code == ftypes.VrPoupanca:
			runningFc = runningFc.Mul(variable)
			fc = runningFc
			growthRate = fixed
			variableOut = fc
		default:
			fc = decimalx.One
			growthRate = fixed.Mul(variable)
			variableOut = variable
		}

		if scheduleIdx < len(cfg.Schedule) && d.Equal(cfg.Schedule[scheduleIdx].Date) {
			ent1 := cfg.Schedule[scheduleIdx]

			bal := cfg.Principal.Mul(fc).Add(accrued).Sub(amortizedTotal.Mul(fc)).Sub(settledTotal)

			if !ent1.IsBare {
				denom := decimalx.One.Sub(ratioRegular)
				adj := decimalx.One
				if !denom.IsZero() {
					adj = decimalx.One.Sub(ratioCurrent).Div(denom)
				}
				amortFraction := ent1.Ratio.Mul(adj)
				ratioCurrent = ratioCurrent.Add(amortFraction)
				ratioRegular = ratioRegular.Add(ent1.Ratio)
				amortizedTotal = ratioCurrent.Mul(cfg.Principal)
				if ent1.AmortizesInterest {
					deferred := accrued.Sub(interestCurrentPeriod).Sub(settledTotal)
					settledCurrent := interestCurrentPeriod.Add(ratioCurrent.Mul(deferred))
					settledTotal = settledTotal.Add(settledCurrent)
				}
			} else {
				balNow := bal
				plfv := cfg.Principal.Mul(decimalx.One.Sub(ratioCurrent)).Mul(fc.Sub(decimalx.One))
				val0 := decimalx.Min(ent1.Value, balNow)
				val1 := decimalx.Min(val0, accrued.Sub(settledTotal))
				val2 := decimalx.Min(val0.Sub(val1), plfv)
				val3 := val0.Sub(val1).Sub(val2)
				ratioCurrent = ratioCurrent.Add(val3.Div(cfg.Principal))
				amortizedTotal = amortizedTotal.Add(val3)
				settledTotal = settledTotal.Add(val1)
			}

			period++
			interestCurrentPeriod = decimalx.Zero
			scheduleIdx++
		}

		balForAccrual := cfg.Principal.Mul(fc).Add(accrued).Sub(amortizedTotal.Mul(fc)).Sub(settledTotal)
		dailyGrowth := growthRate.Sub(decimalx.One)
		dailyInterest := balForAccrual.Mul(dailyGrowth)
		accrued = accrued.Add(dailyInterest)
		interestCurrentPeriod = interestCurrentPeriod.Add(dailyInterest)

		finalBal := cfg.Principal.Mul(fc).Add(accrued).Sub(amortizedTotal.Mul(fc)).Sub(settledTotal)
		roundedBal := decimalx.RoundMoney(finalBal)

		out = append(out, DailyReturn{
			No:             no,
			Period:         period,
			Date:           d,
			Value:          decimalx.RoundMoney(dailyInterest),
			Bal:            roundedBal,
			FixedFactor:    fixed,
			VariableFactor: variableOut,
		})

		if roundedBal.IsZero() {
			break
		}
	}

	return out, nil
}
