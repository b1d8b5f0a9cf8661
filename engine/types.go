/*
Package engine simulates daily compounding of a staked balance.

PURPOSE:
  This package contains the core simulation engine: given a set of
  parameters (initial stake, duration, referral partners, scheduled
  deposits and withdrawals, optional real profit data), it folds a
  daily step function over every calendar date in the range and
  produces a Year -> Month -> Day result tree with summaries computed
  bottom-up.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A currency amount backed by decimal.Decimal
  - Partner: An L1 or L2 referral partner with its own running stake
  - DailyResult: One simulated calendar day, immutable once produced
  - MonthlyResult / YearlyResult: Aggregated wrappers with summaries

DESIGN PRINCIPLES:
  1. Purity: Simulate is a synchronous function of its inputs; no state
     escapes a single invocation
  2. Precision: Uses decimal.Decimal so the per-day balance invariant
     holds exactly, not within float tolerance
  3. Totality: malformed optional inputs degrade to empty/zero instead
     of aborting the run

USAGE:
  params := engine.SimulationParams{
      InitialStake:  engine.NewMoney(1000),
      DurationYears: 1,
      StartDate:     engine.NewDate(2025, time.March, 10),
  }
  years, err := engine.Simulate(params)

SEE ALSO:
  - calendar.go: Weekend/vacation/working-day policy
  - rates.go:    Tiered profit-share and commission lookup
  - step.go:     The daily step function
  - driver.go:   Date-range iteration and result grouping
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Currency amount backed by decimal
// =============================================================================

// Money is a currency amount. All engine arithmetic goes through Money so
// stake balances never accumulate binary floating-point drift.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money          { return Money{Value: decimal.NewFromFloat(value)} }
func NewMoneyFromInt(value int) Money       { return Money{Value: decimal.NewFromInt(int64(value))} }
func MoneyFromDecimal(d decimal.Decimal) Money { return Money{Value: d} }
func ZeroMoney() Money                      { return Money{Value: decimal.Zero} }

// MustParseMoney parses a decimal string, returning zero on failure.
func MustParseMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney()
	}
	return Money{Value: d}
}

func (m Money) Add(o Money) Money             { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money             { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(s decimal.Decimal) Money   { return Money{Value: m.Value.Mul(s)} }
func (m Money) Div(s decimal.Decimal) Money   { return Money{Value: m.Value.Div(s)} }
func (m Money) Neg() Money                    { return Money{Value: m.Value.Neg()} }
func (m Money) IsZero() bool                  { return m.Value.IsZero() }
func (m Money) IsPositive() bool              { return m.Value.IsPositive() }
func (m Money) IsNegative() bool              { return m.Value.IsNegative() }
func (m Money) Equal(o Money) bool            { return m.Value.Equal(o.Value) }
func (m Money) GreaterThan(o Money) bool      { return m.Value.GreaterThan(o.Value) }
func (m Money) GreaterThanOrEqual(o Money) bool { return m.Value.GreaterThanOrEqual(o.Value) }
func (m Money) LessThan(o Money) bool         { return m.Value.LessThan(o.Value) }
func (m Money) Float64() float64              { return m.Value.InexactFloat64() }
func (m Money) String() string                { return m.Value.String() }

// =============================================================================
// PARTNERS - Two-level referral structure
// =============================================================================

// Level identifies a partner's position in the referral tree.
// Exactly one level per partner, fixed at creation.
type Level string

const (
	LevelL1 Level = "L1"
	LevelL2 Level = "L2"
)

// Partner is a referral partner with its own stake. The engine never
// creates or deletes partners, it only evolves their running stake.
type Partner struct {
	ID           string
	Name         string
	Level        Level
	InitialStake Money

	// For L2 partners: the L1 that referred them. An L2 with no parent
	// (or a parent ID that matches no L1 in the parameter set) is an
	// orphan and produces no L1 fan-out.
	ParentL1ID string
}

// =============================================================================
// REAL PROFIT DATA - Per-date rate overrides
// =============================================================================

// RealProfitRecord overrides the default daily gross profit rate for a
// single calendar date. The date is an ISO YYYY-MM-DD string because
// matching is exact string-keyed, never interpolated over a range.
type RealProfitRecord struct {
	Date            string
	GrossProfitRate decimal.Decimal
}

// =============================================================================
// DAILY RESULT - One simulated calendar day
// =============================================================================

// PartnerCommission is a single commission entry earned on one day.
type PartnerCommission struct {
	PartnerID   string
	PartnerName string
	Level       Level
	Commission  Money

	// For L1 commissions generated by an L2 partner's profit: the
	// originating L2's ID. Empty for direct commissions.
	FromPartnerID string
}

// DailyResult records one calendar day of the simulation.
// Immutable once produced.
type DailyResult struct {
	Date               Date
	Stake              Money // start-of-day, reconstructed (see step.go)
	Profit             Money
	PartnerCommissions []PartnerCommission
	Deposit            Money
	Withdrawal         Money
	WithdrawalFee      Money
	NewStake           Money // end-of-day
	IsWeekend          bool
	IsVacation         bool
}

// =============================================================================
// AGGREGATED RESULTS - Month and year wrappers with summaries
// =============================================================================

// PartnerSummary is a partner's total commission over a month or year.
type PartnerSummary struct {
	PartnerID       string
	PartnerName     string
	Level           Level
	TotalCommission Money
}

// Summary holds the aggregate fields shared by monthly and yearly
// results. Summaries are pure reductions over children, never
// independently mutated.
type Summary struct {
	StartStake       Money
	EndStake         Money
	TotalProfit      Money
	PartnerSummaries []PartnerSummary
	TotalDeposits    Money
	TotalWithdrawals Money
}

// MonthlyResult wraps one calendar month of days.
type MonthlyResult struct {
	Year    int
	Month   time.Month
	Days    []DailyResult
	Summary Summary
}

// YearlyResult wraps one calendar year of months.
type YearlyResult struct {
	Year    int
	Months  []MonthlyResult
	Summary Summary
}
