// Package ftypes holds the configuration enums and schedule-entry types
// shared by every engine package (internal/yieldfactor, schedule,
// amortization, dailyreturn). It has no dependency on any of them, so it
// sits at the bottom of the module's import graph alongside index and the
// internal/* leaf packages.
package ftypes

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/index"
)

// Capitalisation is the day-count convention governing a period's spread
// factor, per spec.md §4.2.
type Capitalisation int

const (
	Cap360 Capitalisation = iota
	Cap365
	Cap30360
	Cap252
)

func (c Capitalisation) String() string {
	switch c {
	case Cap360:
		return "360"
	case Cap365:
		return "365"
	case Cap30360:
		return "30/360"
	case Cap252:
		return "252"
	default:
		return fmt.Sprintf("Capitalisation(%d)", int(c))
	}
}

// VrIndexCode identifies the reference index a VariableIndex tracks.
type VrIndexCode int

const (
	VrCDI VrIndexCode = iota
	VrPoupanca
)

func (v VrIndexCode) String() string {
	switch v {
	case VrCDI:
		return "CDI"
	case VrPoupanca:
		return "Poupanca"
	default:
		return fmt.Sprintf("VrIndexCode(%d)", int(v))
	}
}

// PLACode identifies the monthly inflation index a PriceLevelAdjustment
// tracks.
type PLACode int

const (
	PLAIPCA PLACode = iota
	PLAIGPM
)

func (p PLACode) String() string {
	switch p {
	case PLAIPCA:
		return "IPCA"
	case PLAIGPM:
		return "IGPM"
	default:
		return fmt.Sprintf("PLACode(%d)", int(p))
	}
}

// PLAShift selects which published index month a correction date applies,
// per SPEC_FULL.md Expansion D.1.
type PLAShift int

const (
	PLAShiftAuto PLAShift = iota
	PLAShiftM1
	PLAShiftM2
)

// GainOutputMode selects which interest register a Payment's gain field
// reports, per spec.md §6.
type GainOutputMode int

const (
	GainCurrent GainOutputMode = iota
	GainDeferred
	GainSettled
)

// OpMode names the four schedule-preprocessor modes, per spec.md §6.
type OpMode int

const (
	OpBullet OpMode = iota
	OpJurosMensais
	OpPrice
	OpLivre
)

// VariableIndex attaches a CDI or Poupança reference index to a schedule,
// with pct expressing the percentage of the index the instrument pays
// (e.g. 100 for "100% do CDI").
type VariableIndex struct {
	Code    VrIndexCode
	Pct     int
	Backend index.Backend
}

// PriceLevelAdjustment describes monthly inflation-index correction, per
// spec.md §3.
type PriceLevelAdjustment struct {
	Code                PLACode
	BaseDate            time.Time
	Period              int
	Shift               PLAShift
	AmortizesAdjustment bool
}

// DctOverride overrides the denominator of a 30/360 period's fractional
// day-count, per spec.md §3/§4.2.
type DctOverride struct {
	DateFrom, DateTo          time.Time
	PredatesFirstAmortization bool
}

// CalcDate pins the as-of date a payments-table computation is run
// against; Runaway requests one extra trailing row past Value (spec.md
// §9's "runaway calc_date").
type CalcDate struct {
	Value   time.Time
	Runaway bool
}

// Entry is the tagged union spec.md §9 calls for: every schedule entry is
// either Regular (a scheduled ratio-based amortization/interest event) or
// Bare (an extraordinary, absolute-value prepayment/insertion). Phases in
// C6/C7 dispatch on IsBare.
type Entry struct {
	Date  time.Time
	IsBare bool

	// Regular fields (IsBare == false).
	Ratio            decimal.Decimal
	AmortizesInterest bool

	// Bare fields (IsBare == true).
	Value decimal.Decimal

	// Shared optional fields.
	PLA         *PriceLevelAdjustment
	DctOverride *DctOverride
}

// Regular constructs a Regular schedule entry.
func Regular(date time.Time, ratio decimal.Decimal, amortizesInterest bool) Entry {
	return Entry{Date: date, Ratio: ratio, AmortizesInterest: amortizesInterest}
}

// Bare constructs a Bare (extraordinary insertion) schedule entry.
func Bare(date time.Time, value decimal.Decimal) Entry {
	return Entry{Date: date, IsBare: true, Value: value}
}

// WithDct attaches a DctOverride to e and returns the copy.
func (e Entry) WithDct(o DctOverride) Entry {
	e.DctOverride = &o
	return e
}

// WithPLA attaches a PriceLevelAdjustment to e and returns the copy.
func (e Entry) WithPLA(p PriceLevelAdjustment) Entry {
	e.PLA = &p
	return e
}
