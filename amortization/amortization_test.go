package amortization

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inco-org/fincore/ftypes"
	"github.com/inco-org/fincore/index"
	"github.com/inco-org/fincore/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Scenario 1 (spec.md §8): Bullet, fixed rate, 360. spec.md's own figures
// (tax=15.00/net=1085.00) are internally inconsistent with its §4.5 bracket
// table: a one-year holding period (360 days, Δ∈(180,360]) falls in the
// 0.20 bracket, not the 0.15 bracket (which needs Δ>720). The assertions
// below follow the bracket table taxtable.Rate implements, not the
// inconsistent scenario figure.
func TestGetPaymentsTable_BulletFixed360(t *testing.T) {
	sched, err := schedule.Bullet(day(2022, 1, 1), nil, 12, nil)
	require.NoError(t, err)

	out, err := GetPaymentsTable(ComputeConfig{
		Principal: decimal.NewFromInt(1000),
		APY:       decimal.NewFromFloat(0.10),
		Schedule:  sched,
		Cap:       ftypes.Cap360,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	assert.Equal(t, "1000", p.Amort.String())
	assert.Equal(t, "100", p.Gain.String())
	assert.Equal(t, "1100", p.Raw.String())
	assert.Equal(t, "20", p.Tax.String())
	assert.Equal(t, "1080", p.Net.String())
	assert.Equal(t, "0", p.Bal.String())
}

// Scenario 2 (spec.md §8): JurosMensais, 30/360.
func TestGetPaymentsTable_JurosMensais30360(t *testing.T) {
	sched, err := schedule.JurosMensais(day(2022, 1, 1), nil, 3, nil, nil)
	require.NoError(t, err)

	out, err := GetPaymentsTable(ComputeConfig{
		Principal: decimal.NewFromInt(1000),
		APY:       decimal.NewFromFloat(0.12),
		Schedule:  sched,
		Cap:       ftypes.Cap30360,
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.True(t, out[0].Amort.IsZero())
	gain1, _ := out[0].Gain.Float64()
	assert.InDelta(t, 9.49, gain1, 0.02)

	last := out[2]
	assert.Equal(t, "1000", last.Amort.String())
	assert.Equal(t, "0", last.Bal.String())
}

// Scenario 3 (spec.md §8): Price, 30/360.
func TestGetPaymentsTable_Price30360(t *testing.T) {
	sched, err := schedule.Price(day(2022, 1, 1), nil, 12, decimal.NewFromInt(1200), decimal.NewFromFloat(0.12), nil)
	require.NoError(t, err)

	out, err := GetPaymentsTable(ComputeConfig{
		Principal: decimal.NewFromInt(1200),
		APY:       decimal.NewFromFloat(0.12),
		Schedule:  sched,
		Cap:       ftypes.Cap30360,
	})
	require.NoError(t, err)
	require.Len(t, out, 12)

	rawF, _ := out[0].Raw.Float64()
	assert.InDelta(t, 105.32, rawF, 0.5)

	sumAmort := decimal.Zero
	for _, p := range out {
		sumAmort = sumAmort.Add(p.Amort)
	}
	sumF, _ := sumAmort.Float64()
	assert.InDelta(t, 1200.0, sumF, 0.02)
	assert.Equal(t, "0", out[11].Bal.String())
}

// Scenario 4 (spec.md §8): CDI-indexed, 252, full range.
func TestGetPaymentsTable_CDIIndexed252(t *testing.T) {
	backend := index.NewInMemoryBackend()
	sched, err := schedule.Bullet(day(2021, 1, 4), nil, 11, nil)
	require.NoError(t, err)

	out, err := GetPaymentsTable(ComputeConfig{
		Principal: decimal.NewFromInt(10000),
		APY:       decimal.NewFromFloat(0.02),
		Schedule:  sched,
		Cap:       ftypes.Cap252,
		VIR:       &ftypes.VariableIndex{Code: ftypes.VrCDI, Pct: 100, Backend: backend},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "0", out[0].Bal.String())
}

// Scenario 5 (spec.md §8): Bullet with a prepayment before maturity.
func TestGetPaymentsTable_BulletWithPrepayment(t *testing.T) {
	ins := []schedule.Insertion{{Date: day(2022, 7, 1), Value: decimal.NewFromInt(600)}}
	sched, err := schedule.Bullet(day(2022, 1, 1), nil, 12, ins)
	require.NoError(t, err)

	out, err := GetPaymentsTable(ComputeConfig{
		Principal: decimal.NewFromInt(1000),
		APY:       decimal.NewFromFloat(0.10),
		Schedule:  sched,
		Cap:       ftypes.Cap360,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Amort.GreaterThan(decimal.Zero))
	assert.Equal(t, "0", out[1].Bal.String())
}

// Scenario 6 (spec.md §8): Livre, over-subscribed schedule.
func TestGetPaymentsTable_LivreOverSubscribed(t *testing.T) {
	entries := []ftypes.Entry{
		ftypes.Regular(day(2022, 1, 1), decimal.Zero, false),
		ftypes.Regular(day(2022, 4, 1), decimal.NewFromFloat(0.4), true),
		ftypes.Regular(day(2022, 7, 1), decimal.NewFromFloat(0.4), true),
		ftypes.Regular(day(2022, 10, 1), decimal.NewFromFloat(0.3), true),
	}
	_, err := schedule.Livre(entries, nil, nil)
	assert.ErrorIs(t, err, ftypes.ErrRatioOverflow)
}

func TestGetPaymentsTable_PrincipalZero_EmptyResult(t *testing.T) {
	out, err := GetPaymentsTable(ComputeConfig{Principal: decimal.Zero, Schedule: []ftypes.Entry{
		ftypes.Regular(day(2022, 1, 1), decimal.Zero, false),
		ftypes.Regular(day(2023, 1, 1), decimal.NewFromInt(1), true),
	}})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGetPaymentsTable_InvalidPrincipal(t *testing.T) {
	_, err := GetPaymentsTable(ComputeConfig{Principal: decimal.NewFromFloat(0.001), Schedule: []ftypes.Entry{
		ftypes.Regular(day(2022, 1, 1), decimal.Zero, false),
		ftypes.Regular(day(2023, 1, 1), decimal.NewFromInt(1), true),
	}})
	assert.ErrorIs(t, err, ftypes.ErrInvalidPrincipal)
}

func TestGetPaymentsTable_IndexMismatch(t *testing.T) {
	sched, _ := schedule.Bullet(day(2022, 1, 1), nil, 12, nil)
	_, err := GetPaymentsTable(ComputeConfig{
		Principal: decimal.NewFromInt(1000), APY: decimal.NewFromFloat(0.1),
		Schedule: sched, Cap: ftypes.Cap252,
	})
	assert.ErrorIs(t, err, ftypes.ErrIndexMismatch)
}

func TestGetPaymentsTable_CalcDateEqualsLastDate_SameAsOmitted(t *testing.T) {
	sched, _ := schedule.Bullet(day(2022, 1, 1), nil, 12, nil)
	cfg := ComputeConfig{Principal: decimal.NewFromInt(1000), APY: decimal.NewFromFloat(0.10), Schedule: sched, Cap: ftypes.Cap360}

	withoutCalcDate, err := GetPaymentsTable(cfg)
	require.NoError(t, err)

	cfg.CalcDate = &ftypes.CalcDate{Value: sched[len(sched)-1].Date}
	withCalcDate, err := GetPaymentsTable(cfg)
	require.NoError(t, err)

	require.Len(t, withCalcDate, len(withoutCalcDate))
	assert.Equal(t, withoutCalcDate[0].Raw.String(), withCalcDate[0].Raw.String())
}
