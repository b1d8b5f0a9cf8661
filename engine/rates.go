/*
rates.go - Tiered rate tables

PURPOSE:
  Pure lookup functions mapping a stake amount to its profit-share
  fraction and referral commission fractions, and a date to its daily
  gross profit rate (default nominal rate, or a per-date real-data
  override).

TIERING:
  Both tables are step functions over stake thresholds, inclusive on
  the lower bound of each band. Commission rates are looked up on the
  REFERRING PARTNER'S own stake tier, not the investor's, and apply to
  that partner's net daily profit. Commissions are paid by the bank,
  never deducted from the partner's stake.

DEFAULT RATE:
  16% nominal gross profit per month over an assumed 20 working days,
  regardless of how many working days the month actually has.
*/
package engine

import "github.com/shopspring/decimal"

// dec builds an exact decimal constant; panics on malformed literals,
// which only happens on a typo in this file.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultMonthlyGrossRate is the nominal gross profit rate per month.
var DefaultMonthlyGrossRate = dec("0.16")

// WorkingDaysPerMonth is the assumed average used to spread the
// monthly nominal rate across days.
var WorkingDaysPerMonth = dec("20")

// defaultDailyRate = 0.16 / 20 = 0.008
var defaultDailyRate = DefaultMonthlyGrossRate.Div(WorkingDaysPerMonth)

// =============================================================================
// PROFIT SHARE TIERS
// =============================================================================

// ProfitTier is one band of the profit-share table. MinStake is
// inclusive; the band ends where the next one begins.
type ProfitTier struct {
	MinStake Money
	Share    decimal.Decimal
}

var profitTiers = []ProfitTier{
	{MinStake: NewMoneyFromInt(50000), Share: dec("0.60")},
	{MinStake: NewMoneyFromInt(20000), Share: dec("0.50")},
	{MinStake: NewMoneyFromInt(10000), Share: dec("0.40")},
	{MinStake: NewMoneyFromInt(1000), Share: dec("0.30")},
	{MinStake: NewMoneyFromInt(200), Share: dec("0.20")},
	{MinStake: NewMoneyFromInt(0), Share: dec("0")},
}

// ProfitShare returns the profit-share fraction for a stake amount.
func ProfitShare(stake Money) decimal.Decimal {
	for _, tier := range profitTiers {
		if stake.GreaterThanOrEqual(tier.MinStake) {
			return tier.Share
		}
	}
	return decimal.Zero // stake below zero: dormant
}

// ProfitShareTiers returns the profit-share table in ascending order,
// for callers that render it (rate inspection endpoints, docs).
func ProfitShareTiers() []ProfitTier {
	tiers := make([]ProfitTier, len(profitTiers))
	for i, t := range profitTiers {
		tiers[len(profitTiers)-1-i] = t
	}
	return tiers
}

// =============================================================================
// REFERRAL COMMISSION TIERS
// =============================================================================

// CommissionRate is the pair of fractions paid on a referred partner's
// net daily profit: L1 to the direct referrer, L2 one level up.
type CommissionRate struct {
	L1 decimal.Decimal
	L2 decimal.Decimal
}

// CommissionTier is one band of the commission table.
type CommissionTier struct {
	MinStake Money
	Rate     CommissionRate
}

var commissionTiers = []CommissionTier{
	{MinStake: NewMoneyFromInt(50000), Rate: CommissionRate{L1: dec("0.05"), L2: dec("0.025")}},
	{MinStake: NewMoneyFromInt(20000), Rate: CommissionRate{L1: dec("0.10"), L2: dec("0.05")}},
	{MinStake: NewMoneyFromInt(10000), Rate: CommissionRate{L1: dec("0.25"), L2: dec("0.125")}},
	{MinStake: NewMoneyFromInt(1000), Rate: CommissionRate{L1: dec("0.50"), L2: dec("0.25")}},
	{MinStake: NewMoneyFromInt(0), Rate: CommissionRate{L1: dec("1.00"), L2: dec("0.50")}},
}

// CommissionRates returns the commission fractions for the referring
// partner's own stake tier.
func CommissionRates(stake Money) CommissionRate {
	for _, tier := range commissionTiers {
		if stake.GreaterThanOrEqual(tier.MinStake) {
			return tier.Rate
		}
	}
	return commissionTiers[len(commissionTiers)-1].Rate
}

// CommissionRateTiers returns the commission table in ascending order.
func CommissionRateTiers() []CommissionTier {
	tiers := make([]CommissionTier, len(commissionTiers))
	for i, t := range commissionTiers {
		tiers[len(commissionTiers)-1-i] = t
	}
	return tiers
}

// =============================================================================
// DAILY RATE - Default nominal rate with real-data overrides
// =============================================================================

// RateOverrides indexes real profit records by their exact ISO date.
type RateOverrides struct {
	byDate map[string]decimal.Decimal
}

// NewRateOverrides builds the override index from parsed records.
// Later records win on duplicate dates.
func NewRateOverrides(records []RealProfitRecord) RateOverrides {
	if len(records) == 0 {
		return RateOverrides{}
	}
	byDate := make(map[string]decimal.Decimal, len(records))
	for _, r := range records {
		byDate[r.Date] = r.GrossProfitRate
	}
	return RateOverrides{byDate: byDate}
}

// Rate returns the override for d, if one exists.
func (o RateOverrides) Rate(d Date) (decimal.Decimal, bool) {
	rate, ok := o.byDate[d.ISO()]
	return rate, ok
}

// DailyProfitRate returns the gross profit rate for d: the exact-date
// override when present, otherwise the default nominal daily rate.
func DailyProfitRate(d Date, overrides RateOverrides) decimal.Decimal {
	if rate, ok := overrides.Rate(d); ok {
		return rate
	}
	return defaultDailyRate
}
