package index

import (
	"time"

	"github.com/shopspring/decimal"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// defaultIgnoreDates are Brazilian national holidays (ANBIMA calendar)
// from 2018 through mid-2023, covering the seeded CDI history and a few
// months past it — CDI does not accrue on these days even though they may
// not be weekends.
var defaultIgnoreDates = []time.Time{
	d(2018, 1, 1), d(2018, 2, 12), d(2018, 2, 13), d(2018, 3, 30), d(2018, 5, 1),
	d(2018, 5, 31), d(2018, 9, 7), d(2018, 10, 12), d(2018, 11, 2), d(2018, 11, 15), d(2018, 12, 25),
	d(2019, 1, 1), d(2019, 3, 4), d(2019, 3, 5), d(2019, 4, 19), d(2019, 5, 1),
	d(2019, 6, 20), d(2019, 11, 15), d(2019, 12, 25),
	d(2020, 1, 1), d(2020, 2, 24), d(2020, 2, 25), d(2020, 4, 10), d(2020, 4, 21),
	d(2020, 5, 1), d(2020, 6, 11), d(2020, 9, 7), d(2020, 10, 12), d(2020, 11, 2), d(2020, 12, 25),
	d(2021, 1, 1), d(2021, 2, 15), d(2021, 2, 16), d(2021, 4, 2), d(2021, 4, 21),
	d(2021, 6, 3), d(2021, 9, 7), d(2021, 10, 12), d(2021, 11, 2), d(2021, 11, 15),
	d(2022, 2, 28), d(2022, 3, 1), d(2022, 4, 15), d(2022, 4, 21), d(2022, 6, 16),
	d(2022, 9, 7), d(2022, 10, 12), d(2022, 11, 2), d(2022, 11, 15),
	d(2023, 2, 20), d(2023, 2, 21), d(2023, 4, 7), d(2023, 4, 21), d(2023, 5, 1), d(2023, 6, 8),
}

// defaultCDIRanges is the published CDI daily rate (in percent) over the
// given effective ranges, covering the SELIC easing/tightening cycle from
// late 2017 through November 2022.
var defaultCDIRanges = []cdiRange{
	{d(2017, 12, 29), d(2018, 2, 7), decimal.NewFromFloat(0.026444)},
	{d(2018, 2, 8), d(2018, 3, 21), decimal.NewFromFloat(0.025515)},
	{d(2018, 3, 22), d(2018, 9, 28), decimal.NewFromFloat(0.024583)},
	{d(2018, 10, 1), d(2019, 7, 31), decimal.NewFromFloat(0.024620)},
	{d(2019, 8, 1), d(2019, 9, 18), decimal.NewFromFloat(0.022751)},
	{d(2019, 9, 19), d(2019, 10, 30), decimal.NewFromFloat(0.020872)},
	{d(2019, 10, 31), d(2019, 12, 11), decimal.NewFromFloat(0.018985)},
	{d(2019, 12, 12), d(2020, 2, 5), decimal.NewFromFloat(0.017089)},
	{d(2020, 2, 6), d(2020, 3, 18), decimal.NewFromFloat(0.016137)},
	{d(2020, 3, 19), d(2020, 5, 6), decimal.NewFromFloat(0.014227)},
	{d(2020, 5, 7), d(2020, 6, 17), decimal.NewFromFloat(0.011345)},
	{d(2020, 6, 18), d(2020, 8, 5), decimal.NewFromFloat(0.008442)},
	{d(2020, 8, 6), d(2021, 3, 17), decimal.NewFromFloat(0.007469)},
	{d(2021, 3, 18), d(2021, 5, 5), decimal.NewFromFloat(0.010379)},
	{d(2021, 5, 6), d(2021, 6, 16), decimal.NewFromFloat(0.013269)},
	{d(2021, 6, 17), d(2021, 8, 4), decimal.NewFromFloat(0.016137)},
	{d(2021, 8, 5), d(2021, 9, 22), decimal.NewFromFloat(0.019930)},
	{d(2021, 9, 23), d(2021, 10, 27), decimal.NewFromFloat(0.023687)},
	{d(2021, 10, 28), d(2021, 12, 8), decimal.NewFromFloat(0.029256)},
	{d(2021, 12, 9), d(2022, 2, 2), decimal.NewFromFloat(0.034749)},
	{d(2022, 2, 3), d(2022, 3, 16), decimal.NewFromFloat(0.040168)},
	{d(2022, 3, 17), d(2022, 5, 4), decimal.NewFromFloat(0.043739)},
	{d(2022, 5, 5), d(2022, 6, 15), decimal.NewFromFloat(0.047279)},
	{d(2022, 6, 17), d(2022, 8, 3), decimal.NewFromFloat(0.049037)},
	{d(2022, 8, 4), d(2022, 11, 14), decimal.NewFromFloat(0.050788)},
}

// defaultSavingsRanges seeds a flat monthly reference rate (0.5% a month,
// the historical Poupança floor under the TR-indexed regime) over
// 2017-01-01 to 2030-01-01 — a placeholder a production deployment
// replaces with its own Backend wired to a real Savings-rate feed.
var defaultSavingsRanges = []RangedIndex{
	{d(2017, 1, 1), d(2030, 1, 1), decimal.NewFromFloat(0.5)},
}

type monthlyRate struct {
	month time.Time
	rate  decimal.Decimal // percent, e.g. 0.5 means 0.5% for the month
}

func m(y int, mo time.Month) time.Time { return d(y, mo, 1) }

// defaultIPCAMonthly seeds the published monthly IPCA rate (percent) for
// 2021-2022, the window the reference test fixtures exercise.
var defaultIPCAMonthly = []monthlyRate{
	{m(2021, 1), decimal.NewFromFloat(0.25)}, {m(2021, 2), decimal.NewFromFloat(0.86)},
	{m(2021, 3), decimal.NewFromFloat(0.93)}, {m(2021, 4), decimal.NewFromFloat(0.31)},
	{m(2021, 5), decimal.NewFromFloat(0.83)}, {m(2021, 6), decimal.NewFromFloat(0.53)},
	{m(2021, 7), decimal.NewFromFloat(0.96)}, {m(2021, 8), decimal.NewFromFloat(0.87)},
	{m(2021, 9), decimal.NewFromFloat(1.16)}, {m(2021, 10), decimal.NewFromFloat(1.25)},
	{m(2021, 11), decimal.NewFromFloat(0.95)}, {m(2021, 12), decimal.NewFromFloat(0.73)},
	{m(2022, 1), decimal.NewFromFloat(0.54)}, {m(2022, 2), decimal.NewFromFloat(1.01)},
	{m(2022, 3), decimal.NewFromFloat(1.62)}, {m(2022, 4), decimal.NewFromFloat(1.06)},
	{m(2022, 5), decimal.NewFromFloat(0.47)}, {m(2022, 6), decimal.NewFromFloat(0.67)},
	{m(2022, 7), decimal.NewFromFloat(-0.68)}, {m(2022, 8), decimal.NewFromFloat(-0.36)},
	{m(2022, 9), decimal.NewFromFloat(-0.29)}, {m(2022, 10), decimal.NewFromFloat(0.59)},
	{m(2022, 11), decimal.NewFromFloat(0.41)}, {m(2022, 12), decimal.NewFromFloat(0.62)},
}

// defaultIGPMMonthly seeds the published monthly IGPM rate (percent) for
// the same window.
var defaultIGPMMonthly = []monthlyRate{
	{m(2021, 1), decimal.NewFromFloat(2.05)}, {m(2021, 2), decimal.NewFromFloat(2.53)},
	{m(2021, 3), decimal.NewFromFloat(2.94)}, {m(2021, 4), decimal.NewFromFloat(1.51)},
	{m(2021, 5), decimal.NewFromFloat(4.10)}, {m(2021, 6), decimal.NewFromFloat(0.62)},
	{m(2021, 7), decimal.NewFromFloat(0.78)}, {m(2021, 8), decimal.NewFromFloat(0.66)},
	{m(2021, 9), decimal.NewFromFloat(-0.64)}, {m(2021, 10), decimal.NewFromFloat(0.64)},
	{m(2021, 11), decimal.NewFromFloat(0.02)}, {m(2021, 12), decimal.NewFromFloat(0.87)},
	{m(2022, 1), decimal.NewFromFloat(1.82)}, {m(2022, 2), decimal.NewFromFloat(1.83)},
	{m(2022, 3), decimal.NewFromFloat(1.74)}, {m(2022, 4), decimal.NewFromFloat(1.41)},
	{m(2022, 5), decimal.NewFromFloat(0.52)}, {m(2022, 6), decimal.NewFromFloat(0.59)},
	{m(2022, 7), decimal.NewFromFloat(-0.61)}, {m(2022, 8), decimal.NewFromFloat(-0.97)},
	{m(2022, 9), decimal.NewFromFloat(-0.95)}, {m(2022, 10), decimal.NewFromFloat(0.74)},
	{m(2022, 11), decimal.NewFromFloat(0.48)}, {m(2022, 12), decimal.NewFromFloat(0.43)},
}
