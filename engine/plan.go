/*
plan.go - Scheduled deposit/withdrawal plans

PURPOSE:
  A TransactionPlan fires on the anniversary day-of-month of the
  simulation start date, never on day one, and never during a
  backoffice vacation window. Withdrawals carry a fee that steps up
  after the second withdrawal in a calendar month.
*/
package engine

import "github.com/shopspring/decimal"

// Frequency controls how often a transaction plan fires.
type Frequency string

const (
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqYearly    Frequency = "yearly"
)

// TransactionPlan schedules a recurring deposit or withdrawal. Either
// Amount (flat) or Percent (percentage of estimated monthly profit,
// withdrawals only) is set; a zero Percent means the flat amount
// applies.
type TransactionPlan struct {
	Frequency Frequency
	Amount    Money
	Percent   decimal.Decimal
}

// ShouldExecuteTransaction reports whether the plan fires on d, given
// the simulation start date. Always false during backoffice vacation.
func ShouldExecuteTransaction(d Date, plan TransactionPlan, start Date) bool {
	if IsBackofficeVacation(d) {
		return false
	}

	monthsDiff := d.MonthsSince(start)

	switch plan.Frequency {
	case FreqMonthly:
		return d.Day() == start.Day() && monthsDiff > 0
	case FreqQuarterly:
		return d.Day() == start.Day() && monthsDiff > 0 && monthsDiff%3 == 0
	case FreqYearly:
		return d.Day() == start.Day() && d.Month() == start.Month() && d.Year() > start.Year()
	}
	return false
}

// Withdrawal fee rates: 1.25% for the first two withdrawals in a
// calendar month, 2.5% thereafter.
var (
	withdrawalFeeRate        = dec("0.0125")
	withdrawalFeeRateStepped = dec("0.025")
)

// WithdrawalFee returns the fee for a withdrawal, given how many
// withdrawals already executed this calendar month.
func WithdrawalFee(amount Money, withdrawalsThisMonth int) Money {
	if withdrawalsThisMonth < 2 {
		return amount.Mul(withdrawalFeeRate)
	}
	return amount.Mul(withdrawalFeeRateStepped)
}
