package pricetable

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRatios_SumToOne(t *testing.T) {
	principal := decimal.NewFromInt(1200)
	apy := decimal.NewFromFloat(0.12)
	ratios := Ratios(principal, apy, 12)

	sum := decimal.Zero
	for _, r := range ratios {
		sum = sum.Add(r)
	}
	assert.True(t, sum.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.NewFromFloat(1e-9)))
}

func TestInstallment_ConstantAcrossTerm(t *testing.T) {
	principal := decimal.NewFromInt(1200)
	i := MonthlyRate(decimal.NewFromFloat(0.12))
	pmt := Installment(principal, i, 12)
	assert.True(t, pmt.GreaterThan(decimal.Zero))

	// Reference scenario 3 (spec.md §8): 12 equal installments of raw ~= 105.32.
	pmtF, _ := pmt.Float64()
	assert.InDelta(t, 105.32, pmtF, 1.0)
}

func TestRatios_ZeroRate(t *testing.T) {
	principal := decimal.NewFromInt(1000)
	ratios := Ratios(principal, decimal.Zero, 4)
	for _, r := range ratios {
		assert.True(t, r.Sub(decimal.NewFromFloat(0.25)).Abs().LessThan(decimal.NewFromFloat(1e-9)))
	}
}
