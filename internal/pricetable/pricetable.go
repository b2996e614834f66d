// Package pricetable derives the amortization ratio sequence for
// constant-installment (Price/"Tabela Price") fixed-rate schedules (C8,
// spec.md §4.7).
package pricetable

import (
	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/internal/decimalx"
)

// MonthlyRate converts an annualized rate into the equivalent monthly
// compounding rate: i = (1+apy)^(1/12) − 1.
func MonthlyRate(apy decimal.Decimal) decimal.Decimal {
	return decimalx.InterestFactor(apy, decimalx.One.Div(decimal.NewFromInt(12))).Sub(decimalx.One)
}

// Installment computes the fixed monthly payment PMT = P·i / (1 −
// (1+i)^(-n)) for a principal P amortized over n monthly installments at
// monthly rate i.
func Installment(principal, monthlyRate decimal.Decimal, n int) decimal.Decimal {
	if monthlyRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n)))
	}
	denom := decimalx.One.Sub(decimalx.InterestFactor(monthlyRate, decimal.NewFromInt(int64(-n))))
	return principal.Mul(monthlyRate).Div(denom)
}

// Ratios returns the n amortization-ratio fractions (amort_k / principal)
// for a Price schedule, per spec.md §4.7: k=1..n, interest_k =
// bal_{k-1}·i, amort_k = PMT − interest_k, bal_k = bal_{k-1} − amort_k.
// The last entry absorbs the rounding residual so the ratios sum to
// exactly 1, matching the Σratio==1 invariant every regular schedule must
// satisfy (spec.md §3).
func Ratios(principal, apy decimal.Decimal, n int) []decimal.Decimal {
	i := MonthlyRate(apy)
	pmt := Installment(principal, i, n)

	ratios := make([]decimal.Decimal, n)
	bal := principal
	sum := decimalx.Zero
	for k := 0; k < n; k++ {
		interest := bal.Mul(i)
		amort := pmt.Sub(interest)
		if amort.GreaterThan(bal) {
			amort = bal
		}
		bal = bal.Sub(amort)
		ratios[k] = amort.Div(principal)
		sum = sum.Add(ratios[k])
	}
	ratios[n-1] = ratios[n-1].Add(decimalx.One.Sub(sum))
	return ratios
}
