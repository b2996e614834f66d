package amortization

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/internal/decimalx"
)

// LateFeeRate and LateFineRate are the late-settlement penalty rates
// SPEC_FULL.md Expansion C.1 supplements from the original Rust
// implementation's FEE_RATE/FINE_RATE constants: 1% extra interest per day
// late, plus a flat 2% fine.
var (
	LateFeeRate  = decimal.NewFromFloat(0.01)
	LateFineRate = decimal.NewFromFloat(0.02)
)

// LatePayment augments a Payment settled after its due date with the
// extra interest accrued in the interim, plus the fee and fine owed.
type LatePayment struct {
	Payment
	ExtraGain decimal.Decimal
	Penalty   decimal.Decimal
	Fine      decimal.Decimal
}

// ComputeLatePayment computes the late-settlement surcharge on p when paid
// on paidOn instead of p.Date, compounding dailyRate day-by-day over the
// delay (SPEC_FULL.md Expansion C.1).
func ComputeLatePayment(p Payment, paidOn time.Time, dailyRate decimal.Decimal) LatePayment {
	lp := LatePayment{Payment: p, ExtraGain: decimalx.Zero, Penalty: decimalx.Zero, Fine: decimalx.Zero}

	daysLate := int(paidOn.Sub(p.Date).Hours() / 24)
	if daysLate <= 0 {
		return lp
	}

	base := p.Raw
	factor := decimalx.InterestFactor(dailyRate, decimal.NewFromInt(int64(daysLate)))
	extraGain := base.Mul(factor.Sub(decimalx.One))

	lp.ExtraGain = decimalx.RoundMoney(extraGain)
	lp.Penalty = decimalx.RoundMoney(base.Mul(LateFeeRate).Mul(decimal.NewFromInt(int64(daysLate))))
	lp.Fine = decimalx.RoundMoney(base.Mul(LateFineRate))
	return lp
}
