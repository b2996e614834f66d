// Package fincore is the public facade over the amortization engine: it
// re-exports the shared types from ftypes/index/amortization/dailyreturn
// and offers get_payments_table/get_daily_returns plus a payments and a
// daily-returns wrapper per schedule mode (spec.md §6), delegating through the matching
// schedule preprocessor.
package fincore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore/amortization"
	"github.com/inco-org/fincore/dailyreturn"
	"github.com/inco-org/fincore/ftypes"
	"github.com/inco-org/fincore/index"
	"github.com/inco-org/fincore/schedule"
)

// Re-exported configuration enums and shared types (spec.md §3/§6), so
// callers only ever import this one package.
type (
	Capitalisation       = ftypes.Capitalisation
	VrIndexCode          = ftypes.VrIndexCode
	PLACode              = ftypes.PLACode
	PLAShift             = ftypes.PLAShift
	GainOutputMode       = ftypes.GainOutputMode
	OpMode               = ftypes.OpMode
	VariableIndex        = ftypes.VariableIndex
	PriceLevelAdjustment = ftypes.PriceLevelAdjustment
	DctOverride          = ftypes.DctOverride
	CalcDate             = ftypes.CalcDate
	Entry                = ftypes.Entry

	Backend       = index.Backend
	DailyIndex    = index.DailyIndex
	RangedIndex   = index.RangedIndex
	PriceIndexCode = index.PriceIndexCode

	Payment        = amortization.Payment
	ComputeConfig  = amortization.ComputeConfig
	LatePayment    = amortization.LatePayment
	DailyReturn    = dailyreturn.DailyReturn
	DailyConfig    = dailyreturn.Config
	Insertion      = schedule.Insertion
)

const (
	Cap360   = ftypes.Cap360
	Cap365   = ftypes.Cap365
	Cap30360 = ftypes.Cap30360
	Cap252   = ftypes.Cap252

	VrCDI      = ftypes.VrCDI
	VrPoupanca = ftypes.VrPoupanca

	PLAIPCA = ftypes.PLAIPCA
	PLAIGPM = ftypes.PLAIGPM

	PLAShiftAuto = ftypes.PLAShiftAuto
	PLAShiftM1   = ftypes.PLAShiftM1
	PLAShiftM2   = ftypes.PLAShiftM2

	GainCurrent  = ftypes.GainCurrent
	GainDeferred = ftypes.GainDeferred
	GainSettled  = ftypes.GainSettled

	OpBullet       = ftypes.OpBullet
	OpJurosMensais = ftypes.OpJurosMensais
	OpPrice        = ftypes.OpPrice
	OpLivre        = ftypes.OpLivre
)

// Error sentinels (spec.md §7), re-exported so callers only need errors.Is
// against this package.
var (
	ErrInvalidPrincipal   = ftypes.ErrInvalidPrincipal
	ErrInvalidSchedule    = ftypes.ErrInvalidSchedule
	ErrRatioOverflow      = ftypes.ErrRatioOverflow
	ErrIndexMismatch      = ftypes.ErrIndexMismatch
	ErrUnsupportedIndex   = ftypes.ErrUnsupportedIndex
	ErrInvalidTerm        = ftypes.ErrInvalidTerm
	ErrInvalidInsertion   = ftypes.ErrInvalidInsertion
	ErrInvalidAnniversary = ftypes.ErrInvalidAnniversary
	ErrBackendError       = ftypes.ErrBackendError
	ErrInternalDateError  = ftypes.ErrInternalDateError
)

// MaxBareValue is schedule.MaxBareValue re-exported (SPEC_FULL.md Expansion
// C.2's "pay off everything" sentinel).
var MaxBareValue = schedule.MaxBareValue

// GetPaymentsTable is the library's core entry point (spec.md §6).
func GetPaymentsTable(cfg ComputeConfig) ([]Payment, error) {
	return amortization.GetPaymentsTable(cfg)
}

// GetDailyReturns is the library's second core entry point (spec.md §6).
func GetDailyReturns(cfg DailyConfig) ([]DailyReturn, error) {
	return dailyreturn.GetDailyReturns(cfg)
}

// BulletRequest bundles the parameters GetBulletPayments/GetBulletDailyReturns
// need to both build the Bullet schedule and run the engine.
type BulletRequest struct {
	ZeroDate    time.Time
	Anniversary *time.Time
	Term        int
	Insertions  []Insertion

	Principal  decimal.Decimal
	APY        decimal.Decimal
	VIR        *VariableIndex
	PLA        *PriceLevelAdjustment
	Cap        Capitalisation
	CalcDate   *CalcDate
	TaxExempt  bool
	GainOutput GainOutputMode
}

// GetBulletPayments builds a Bullet schedule and runs GetPaymentsTable.
func GetBulletPayments(r BulletRequest) ([]Payment, error) {
	sched, err := schedule.Bullet(r.ZeroDate, r.Anniversary, r.Term, r.Insertions)
	if err != nil {
		return nil, err
	}
	return GetPaymentsTable(ComputeConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA,
		Cap: r.Cap, CalcDate: r.CalcDate, TaxExempt: r.TaxExempt, GainOutput: r.GainOutput,
	})
}

// GetBulletDailyReturns builds a Bullet schedule and runs GetDailyReturns.
func GetBulletDailyReturns(r BulletRequest) ([]DailyReturn, error) {
	sched, err := schedule.Bullet(r.ZeroDate, r.Anniversary, r.Term, r.Insertions)
	if err != nil {
		return nil, err
	}
	return GetDailyReturns(DailyConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA, Cap: r.Cap,
	})
}

// JMRequest bundles the parameters for the JurosMensais wrappers.
type JMRequest struct {
	ZeroDate    time.Time
	Anniversary *time.Time
	Term        int
	Insertions  []Insertion

	Principal  decimal.Decimal
	APY        decimal.Decimal
	VIR        *VariableIndex
	PLA        *PriceLevelAdjustment
	Cap        Capitalisation
	CalcDate   *CalcDate
	TaxExempt  bool
	GainOutput GainOutputMode
}

// GetJMPayments builds a JurosMensais schedule and runs GetPaymentsTable.
func GetJMPayments(r JMRequest) ([]Payment, error) {
	sched, err := schedule.JurosMensais(r.ZeroDate, r.Anniversary, r.Term, r.Insertions, r.VIR)
	if err != nil {
		return nil, err
	}
	return GetPaymentsTable(ComputeConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA,
		Cap: r.Cap, CalcDate: r.CalcDate, TaxExempt: r.TaxExempt, GainOutput: r.GainOutput,
	})
}

// GetJMDailyReturns builds a JurosMensais schedule and runs GetDailyReturns.
func GetJMDailyReturns(r JMRequest) ([]DailyReturn, error) {
	sched, err := schedule.JurosMensais(r.ZeroDate, r.Anniversary, r.Term, r.Insertions, r.VIR)
	if err != nil {
		return nil, err
	}
	return GetDailyReturns(DailyConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA, Cap: r.Cap,
	})
}

// PriceRequest bundles the parameters for the Price wrappers.
type PriceRequest struct {
	ZeroDate    time.Time
	Anniversary *time.Time
	Term        int
	Insertions  []Insertion

	Principal  decimal.Decimal
	APY        decimal.Decimal
	VIR        *VariableIndex
	PLA        *PriceLevelAdjustment
	Cap        Capitalisation
	CalcDate   *CalcDate
	TaxExempt  bool
	GainOutput GainOutputMode
}

// GetPricePayments builds a Price schedule and runs GetPaymentsTable.
func GetPricePayments(r PriceRequest) ([]Payment, error) {
	sched, err := schedule.Price(r.ZeroDate, r.Anniversary, r.Term, r.Principal, r.APY, r.Insertions)
	if err != nil {
		return nil, err
	}
	return GetPaymentsTable(ComputeConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA,
		Cap: r.Cap, CalcDate: r.CalcDate, TaxExempt: r.TaxExempt, GainOutput: r.GainOutput,
	})
}

// GetPriceDailyReturns builds a Price schedule and runs GetDailyReturns.
func GetPriceDailyReturns(r PriceRequest) ([]DailyReturn, error) {
	sched, err := schedule.Price(r.ZeroDate, r.Anniversary, r.Term, r.Principal, r.APY, r.Insertions)
	if err != nil {
		return nil, err
	}
	return GetDailyReturns(DailyConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA, Cap: r.Cap,
	})
}

// LivreRequest bundles the parameters for the Livre wrappers. Entries is a
// caller-supplied regular schedule (already ftypes.Entry values); Livre
// never generates dates itself (spec.md §4.8).
type LivreRequest struct {
	Entries    []Entry
	Insertions []Insertion

	Principal  decimal.Decimal
	APY        decimal.Decimal
	VIR        *VariableIndex
	PLA        *PriceLevelAdjustment
	Cap        Capitalisation
	CalcDate   *CalcDate
	TaxExempt  bool
	GainOutput GainOutputMode
}

// GetLivrePayments merges r.Entries/r.Insertions into a schedule and runs
// GetPaymentsTable.
func GetLivrePayments(r LivreRequest) ([]Payment, error) {
	sched, err := schedule.Livre(r.Entries, r.Insertions, r.VIR)
	if err != nil {
		return nil, err
	}
	return GetPaymentsTable(ComputeConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA,
		Cap: r.Cap, CalcDate: r.CalcDate, TaxExempt: r.TaxExempt, GainOutput: r.GainOutput,
	})
}

// GetLivreDailyReturns merges r.Entries/r.Insertions into a schedule and
// runs GetDailyReturns.
func GetLivreDailyReturns(r LivreRequest) ([]DailyReturn, error) {
	sched, err := schedule.Livre(r.Entries, r.Insertions, r.VIR)
	if err != nil {
		return nil, err
	}
	return GetDailyReturns(DailyConfig{
		Principal: r.Principal, APY: r.APY, Schedule: sched, VIR: r.VIR, PLA: r.PLA, Cap: r.Cap,
	})
}
