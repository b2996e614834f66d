package decimalx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInterestFactor(t *testing.T) {
	cases := []struct {
		name string
		rate string
		t    string
		want float64
	}{
		{"one year at 10pct", "0.10", "1", 1.10},
		{"half year at 12pct", "0.12", "0.5", 1.0583005},
		{"zero rate", "0", "5", 1.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rate, _ := decimal.NewFromString(c.rate)
			period, _ := decimal.NewFromString(c.t)
			got := InterestFactor(rate, period)
			gotF, _ := got.Float64()
			assert.InDelta(t, c.want, gotF, 1e-6)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	d := decimal.NewFromFloat(1100.004)
	assert.Equal(t, "1100", RoundMoney(d).String())

	d2 := decimal.NewFromFloat(9.495)
	assert.Equal(t, "9.5", RoundMoney(d2).String())
}

func TestCloseToOne(t *testing.T) {
	assert.True(t, CloseToOne(decimal.NewFromFloat(1.0000000001)))
	assert.False(t, CloseToOne(decimal.NewFromFloat(0.99)))
}
